package window

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// LoadFont parses the TTF/OTF at path, or Go Mono when path is empty.
func LoadFont(path string) (*text.GoTextFaceSource, error) {
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return src, nil
}

// faces caches one face per letter size; a field only uses one or two.
type faces struct {
	source *text.GoTextFaceSource
	bySize map[float64]*text.GoTextFace
}

func newFaces(src *text.GoTextFaceSource) *faces {
	return &faces{source: src, bySize: make(map[float64]*text.GoTextFace)}
}

func (f *faces) get(size float64) *text.GoTextFace {
	if face, ok := f.bySize[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.bySize[size] = face
	return face
}
