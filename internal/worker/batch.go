package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/textcheck/internal/extract"
	"github.com/ppiankov/textcheck/pkg/checker"
)

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path    string           `json:"path"`
	Words   int              `json:"words"`
	Results []checker.Result `json:"results"`
	Error   error            `json:"-"`
}

// GetError implements Result.
func (r *FileResult) GetError() error {
	return r.Error
}

// fileJob checks a single file through the shared checker.
type fileJob struct {
	path    string
	html    bool
	ignore  []string
	checker *checker.Checker
}

// Execute implements Job.
func (j *fileJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return &FileResult{Path: j.path, Error: fmt.Errorf("read: %w", err)}
	}
	text := string(data)
	if j.html {
		text, err = extract.Text(text)
		if err != nil {
			return &FileResult{Path: j.path, Error: err}
		}
	}
	results, err := j.checker.Check(ctx, text, j.ignore)
	if err != nil {
		return &FileResult{Path: j.path, Error: err}
	}
	return &FileResult{
		Path:    j.path,
		Words:   j.checker.CountWords(text),
		Results: results,
	}
}

// Batch checks files concurrently through c, with at most concurrency
// files in flight. Results come back in completion order.
func Batch(ctx context.Context, c *checker.Checker, paths []string, ignore []string, html bool, concurrency int) []*FileResult {
	if len(paths) == 0 {
		return nil
	}
	pool := NewPool(concurrency)
	pool.Start(ctx)
	go func() {
		for _, path := range paths {
			pool.Submit(&fileJob{path: path, html: html, ignore: ignore, checker: c})
		}
		pool.Close()
	}()

	results := make([]*FileResult, 0, len(paths))
	for res := range pool.Results() {
		results = append(results, res.(*FileResult))
	}
	return results
}
