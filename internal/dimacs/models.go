package dimacs

import (
	"github.com/pkg/errors"
	"github.com/rhartert/dimacs"
)

// ReadModels parses a model file: one satisfying assignment per line,
// each a whitespace-separated list of signed literals terminated by 0,
// in the same convention minisat-family solvers use for -v output.
// Grounded on the teacher's parsers/parsers.go ReadModels/modelBuilder,
// which reuses the same external reader instead of hand-scanning lines.
func ReadModels(filename string) ([][]bool, error) {
	rc, err := open(filename)
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	defer rc.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(rc, b); err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(string, int, int) error {
	return errors.New("model files should not have a problem line")
}

func (b *modelBuilder) Clause(raw []int) error {
	model := make([]bool, len(raw))
	for i, l := range raw {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

func (b *modelBuilder) Comment(string) error { return nil }
