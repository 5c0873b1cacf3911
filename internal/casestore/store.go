// Package casestore discovers sample test cases under a contest directory.
//
// Cases for problem "a" live in <root>/testcases/a/ as pairs of files that
// share a stem: "1.txt" holds the input and "1_out.txt" the expected output.
package casestore

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	// Dir is the test case directory under the contest root.
	Dir = "testcases"

	inputSuffix  = ".txt"
	outputSuffix = "_out.txt"
)

// ErrMissingExpectedOutput is matched by every *MissingOutputError.
var ErrMissingExpectedOutput = errors.New("missing expected output")

// MissingOutputError reports an input file without its output pair.
type MissingOutputError struct {
	Problem string
	Case    string
	Path    string // the output file that was expected
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("problem %s, case %s: %s: %s", e.Problem, e.Case, ErrMissingExpectedOutput, e.Path)
}

func (e *MissingOutputError) Unwrap() error { return ErrMissingExpectedOutput }

// TestCase is one sample input and the output it must produce.
type TestCase struct {
	ID       string
	Input    []byte
	Expected []byte
}

// ProblemDir returns the directory holding the cases of problem.
func ProblemDir(root, problem string) string {
	return filepath.Join(root, Dir, problem)
}

// InputPath and OutputPath name the two files of a case.
func InputPath(root, problem, id string) string {
	return filepath.Join(ProblemDir(root, problem), id+inputSuffix)
}

func OutputPath(root, problem, id string) string {
	return filepath.Join(ProblemDir(root, problem), id+outputSuffix)
}

// Cases scans the problem directory and yields its cases in identifier
// order. Every range over the sequence scans again. A missing problem
// directory yields nothing. An unpaired input yields a single error and
// no cases.
func Cases(root, problem string) iter.Seq2[TestCase, error] {
	return func(yield func(TestCase, error) bool) {
		ids, err := scan(root, problem)
		if err != nil {
			yield(TestCase{}, err)
			return
		}
		for _, id := range ids {
			input, err := os.ReadFile(InputPath(root, problem, id))
			if err != nil {
				yield(TestCase{}, fmt.Errorf("reading input of case %s: %w", id, err))
				return
			}
			expected, err := os.ReadFile(OutputPath(root, problem, id))
			if err != nil {
				yield(TestCase{}, fmt.Errorf("reading expected output of case %s: %w", id, err))
				return
			}
			if !yield(TestCase{ID: id, Input: input, Expected: expected}, nil) {
				return
			}
		}
	}
}

// Load collects Cases into a slice.
func Load(root, problem string) ([]TestCase, error) {
	var cases []TestCase
	for tc, err := range Cases(root, problem) {
		if err != nil {
			return nil, err
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// scan returns the sorted stems of all paired cases.
func scan(root, problem string) ([]string, error) {
	dir := ProblemDir(root, problem)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	inputs := map[string]bool{}
	outputs := map[string]bool{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, outputSuffix):
			outputs[strings.TrimSuffix(name, outputSuffix)] = true
		case strings.HasSuffix(name, inputSuffix):
			inputs[strings.TrimSuffix(name, inputSuffix)] = true
		}
	}

	ids := make([]string, 0, len(inputs))
	for id := range inputs {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, compareIDs)

	for _, id := range ids {
		if !outputs[id] {
			return nil, &MissingOutputError{Problem: problem, Case: id, Path: OutputPath(root, problem, id)}
		}
	}
	return ids, nil
}

// compareIDs orders numeric stems numerically and before any other stem,
// which are ordered lexically.
func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
