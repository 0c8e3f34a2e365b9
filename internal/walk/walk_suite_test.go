package walk_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWalkProperties(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Walk Properties Suite")
}
