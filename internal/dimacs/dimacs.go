// Package dimacs loads DIMACS CNF files into a solver.Solver. It wraps
// github.com/rhartert/dimacs's low-level reader the way the teacher
// repo's parsers/parsers.go wraps it, rather than the hand-rolled
// scanner-based reader this file used to contain: that reader's own
// caller (main.go) referenced dimacs.ParseDIMACS and dimacs.Instantiate,
// neither of which exists anywhere in the package, a dead code path
// rather than a pattern worth carrying forward.
package dimacs

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhartert/dimacs"

	"github.com/hartwell-dyer/cdcl/internal/solver"
)

// ParseError reports a DIMACS file that could not be loaded: one that
// could not be opened or gunzipped, or a malformed one (a missing or
// malformed problem line, an unsupported problem type, or a literal of
// 0 used somewhere other than a clause terminator). Load and ReadModels
// return it for every failure, I/O and parse alike, pairing the file
// path with the underlying error in Err.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return "parsing " + e.File + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Builder is the subset of solver.Solver that loading a formula needs.
type Builder interface {
	AddVariable() int
	AddClause([]solver.Literal) (int, error)
}

func open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening dimacs file")
	}
	rc := io.ReadCloser(f)
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "opening gzip dimacs file")
		}
		rc = gz
	}
	return rc, nil
}

// Load reads filename (transparently gzip-decompressed if it ends in
// .gz) and adds its variables and clauses to s.
func Load(filename string, s Builder) error {
	rc, err := open(filename)
	if err != nil {
		return &ParseError{File: filename, Err: err}
	}
	defer rc.Close()

	b := &builder{solver: s}
	if err := dimacs.ReadBuilder(rc, b); err != nil {
		return &ParseError{File: filename, Err: err}
	}
	if b.err != nil {
		return &ParseError{File: filename, Err: b.err}
	}
	return nil
}

type builder struct {
	solver Builder
	err    error
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return errors.Errorf("unsupported problem type %q, want \"cnf\"", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(raw []int) error {
	lits := make([]solver.Literal, len(raw))
	for i, l := range raw {
		if l == 0 {
			return errors.New("literal 0 may only terminate a clause")
		}
		if l < 0 {
			lits[i] = solver.NegativeLiteral(-l - 1)
		} else {
			lits[i] = solver.PositiveLiteral(l - 1)
		}
	}
	_, err := b.solver.AddClause(lits)
	if err != nil && err != solver.ErrEmptyClause {
		return err
	}
	return nil
}

func (b *builder) Comment(string) error { return nil }
