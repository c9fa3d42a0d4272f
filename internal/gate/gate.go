// Package gate evaluates staged files against configured format rules and
// produces a pass/fail verdict for the surrounding pre-commit hook.
package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	offendingFileSeparator = ", "
	failureMessageSuffix   = ". Automatic formatting failed. Please check the files above."
)

// ErrFilesNotFormatted reports that at least one staged file failed the
// format check. Callers use it to abort the commit with a plain nonzero
// exit after the verdict message has been printed.
var ErrFilesNotFormatted = errors.New("staged files need reformatting")

// Result is the outcome of checking a single file.
type Result int

const (
	Formatted Result = iota
	NeedsReformatting
)

// Checker reports whether a single file is already formatted without
// modifying it. An error means the checker could not be invoked at all;
// the gate folds that into NeedsReformatting.
type Checker interface {
	Check(ctx context.Context, path string) (Result, error)
}

// Stager adds paths to the version-control staging index.
type Stager interface {
	StageFiles(ctx context.Context, paths []string) error
}

// Rule binds a file matcher to the checker that validates matching files.
type Rule struct {
	Name    string
	Matcher Matcher
	Checker Checker
}

// Verdict is the aggregate outcome of one gate run. Offenders preserves
// the original staged order, first seen, without duplicates.
type Verdict struct {
	Offenders []string
}

// Pass reports whether every applicable staged file was already formatted.
func (verdict Verdict) Pass() bool {
	return len(verdict.Offenders) == 0
}

// Message renders the consolidated failure line naming the offending files.
func (verdict Verdict) Message() string {
	return strings.Join(verdict.Offenders, offendingFileSeparator) + failureMessageSuffix
}

// ProgressFunc is invoked after each staged file has been processed,
// whether it matched a rule or was skipped.
type ProgressFunc func(completed int, total int)

// Gate runs the format check over a staged file set. Evaluation is
// strictly sequential in staged order; the only side effect is the
// re-staging of the original file set on a passing verdict.
type Gate struct {
	Rules    []Rule
	Stager   Stager
	Logger   *zap.Logger
	Progress ProgressFunc
}

// Run evaluates the staged files and, on a passing verdict, re-stages
// every originally staged path. The returned error covers only staging
// infrastructure failures; a failing verdict is not an error here.
func (g Gate) Run(ctx context.Context, stagedFiles []string) (Verdict, error) {
	verdict := g.Evaluate(ctx, stagedFiles)
	if !verdict.Pass() {
		return verdict, nil
	}
	if g.Stager != nil && len(stagedFiles) > 0 {
		if stageErr := g.Stager.StageFiles(ctx, stagedFiles); stageErr != nil {
			return verdict, fmt.Errorf("stage files after passing check: %w", stageErr)
		}
	}
	return verdict, nil
}

// Evaluate checks every staged file against the rules and returns the
// verdict without touching the staging index. Files matching no rule are
// skipped entirely. A checker invocation error surfaces identically to a
// genuine formatting difference; the distinction is logged at debug level
// only.
func (g Gate) Evaluate(ctx context.Context, stagedFiles []string) Verdict {
	logger := g.logger()
	totalFiles := len(stagedFiles)

	var offendingFiles []string
	seenOffenders := make(map[string]bool)

	for fileIndex, stagedFile := range stagedFiles {
		for _, rule := range g.Rules {
			if !rule.Matcher.Matches(stagedFile) {
				continue
			}
			checkResult, checkErr := rule.Checker.Check(ctx, stagedFile)
			if checkErr != nil {
				logger.Debug("checker invocation failed",
					zap.String("rule", rule.Name),
					zap.String("file", stagedFile),
					zap.Error(checkErr))
				checkResult = NeedsReformatting
			}
			if checkResult == NeedsReformatting {
				if !seenOffenders[stagedFile] {
					seenOffenders[stagedFile] = true
					offendingFiles = append(offendingFiles, stagedFile)
				}
				break
			}
		}
		if g.Progress != nil {
			g.Progress(fileIndex+1, totalFiles)
		}
	}

	return Verdict{Offenders: offendingFiles}
}

func (g Gate) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}
