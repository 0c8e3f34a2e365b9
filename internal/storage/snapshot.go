package storage

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/dtqw/internal/walk"
)

// snapshot is the on-disk form of a state, split into real and imaginary
// parts in position-major order.
type snapshot struct {
	N  int       `msgpack:"n"`
	Re []float64 `msgpack:"re"`
	Im []float64 `msgpack:"im"`
}

func encodeState(s walk.State) ([]byte, error) {
	snap := snapshot{
		N:  (s.Sites() - 1) / 2,
		Re: make([]float64, len(s)),
		Im: make([]float64, len(s)),
	}
	for i, v := range s {
		snap.Re[i], snap.Im[i] = real(v), imag(v)
	}
	return msgpack.Marshal(&snap)
}

func decodeState(data []byte) (walk.State, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	l, err := walk.NewLattice(snap.N)
	if err != nil {
		return nil, err
	}
	if len(snap.Re) != l.Dim() || len(snap.Im) != l.Dim() {
		return nil, fmt.Errorf("snapshot: expected %d amplitudes for N=%d, got %d/%d",
			l.Dim(), snap.N, len(snap.Re), len(snap.Im))
	}

	s := make(walk.State, l.Dim())
	for i := range s {
		s[i] = complex(snap.Re[i], snap.Im[i])
	}
	return s, nil
}

func saveSnapshot(path string, s walk.State) error {
	data, err := encodeState(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func loadSnapshot(path string) (walk.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeState(data)
}
