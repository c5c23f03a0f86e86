package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"ngshift.dev/pkg/ngshift/internal/adapter"
	"ngshift.dev/pkg/ngshift/internal/controller"
	m "ngshift.dev/pkg/ngshift/internal/model"
	"ngshift.dev/pkg/ngshift/pkg/textdiff"
)

const (
	javaExt          = ".java"
	recursiveSuffix  = "/..."
	planSubjectWidth = 48
)

// ConvertArgs contains the arguments for converting test sources.
type ConvertArgs struct {
	Paths    []m.Path
	Profile  m.Profile
	Write    bool
	ShowPlan bool
	ShowDiff bool
	Parallel uint
	Strict   bool
}

// ProfileArgs contains the arguments for exporting a profile.
type ProfileArgs struct {
	Profile m.Profile
	// Output is the file to write. The profile is displayed when empty.
	Output m.Path
}

// Workflow defines the interface for the conversion workflow.
type Workflow interface {
	Convert(ctx context.Context, args ConvertArgs) error
	ExportProfile(ctx context.Context, args ProfileArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.JavaParserAdapter
	adapter.Materializer
	adapter.ProfileStore
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	parser adapter.JavaParserAdapter,
	materializer adapter.Materializer,
	profiles adapter.ProfileStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter:   fsAdapter,
		JavaParserAdapter: parser,
		Materializer:      materializer,
		ProfileStore:      profiles,
		UI:                ui,
	}
}

// Convert converts every Java source under args.Paths. Files are processed
// concurrently but reported in argument order; a failing file does not stop
// the others, and all failures are returned joined.
func (w *workflow) Convert(ctx context.Context, args ConvertArgs) error {
	if err := args.Profile.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	paths, err := w.collectSources(args.Paths)
	if err != nil {
		return fmt.Errorf("get sources: %w", err)
	}

	if err := w.Start(ctx, startOptions(args)...); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	classifier := NewClassifier(args.Profile, slog.Default())
	engine := NewEngine(args.Profile,
		WithLogger(slog.Default()),
		WithStrictAnnotationMatch(args.Strict),
	)

	results := make([]m.FileResult, len(paths))

	var group errgroup.Group
	if args.Parallel > 0 {
		group.SetLimit(int(args.Parallel))
	}

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			results[i] = w.convertFile(ctx, path, args.Write, classifier, engine)
			return nil
		})
	}

	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error

	for _, result := range results {
		w.DisplayResult(ctx, result)

		if result.Err != nil {
			errs = append(errs, result.Err)
		}
	}

	w.DisplaySummary(ctx, results)

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", len(errs), len(results), errors.Join(errs...))
	}

	return nil
}

func startOptions(args ConvertArgs) []controller.StartOption {
	var opts []controller.StartOption

	if args.ShowPlan {
		opts = append(opts, controller.WithPlan())
	}

	if args.ShowDiff {
		opts = append(opts, controller.WithDiff())
	}

	if args.Write {
		opts = append(opts, controller.WithWrite())
	}

	return opts
}

func (w *workflow) convertFile(ctx context.Context, path m.Path, write bool, classifier Classifier, engine Engine) m.FileResult {
	result := m.FileResult{Path: path}

	fail := func(stage string, err error) m.FileResult {
		slog.Error("Failed to convert source", "path", path, "stage", stage, "error", err)
		result.Err = fmt.Errorf("%s: %w", stage, err)

		return result
	}

	if err := ctx.Err(); err != nil {
		return fail("cancelled", err)
	}

	info, err := w.FileInfo(path)
	if err != nil {
		return fail("stat", err)
	}

	file := m.File{Path: path}

	if file.Content, err = w.ReadFile(path); err != nil {
		return fail("read", err)
	}

	if file.Hash, err = w.HashFile(path); err != nil {
		return fail("hash", err)
	}

	tree, err := w.Parse(ctx, path, file.Content)
	if err != nil {
		return fail("parse", err)
	}

	classification, err := classifier.Classify(tree)
	if err != nil {
		return fail("classify", err)
	}

	result.Script, err = engine.Convert(tree, classification)
	if err != nil {
		return fail("rewrite", err)
	}

	if result.Script.Len() == 0 {
		slog.Debug("Nothing to convert", "path", path)
		return result
	}

	result.Plan = describePlan(tree, result.Script)

	if result.Output, err = w.Materialize(tree, result.Script); err != nil {
		return fail("materialize", err)
	}

	if result.Diff, err = textdiff.Unified(string(path), file.Content, result.Output, textdiff.DefaultContext); err != nil {
		return fail("diff", err)
	}

	slog.Info("Converted source", "path", path, "edits", result.Script.Len())

	if !write {
		return result
	}

	current, err := w.HashFile(path)
	if err != nil {
		return fail("hash", err)
	}

	if current != file.Hash {
		return fail("write", ErrSourceChanged)
	}

	if err := w.WriteFile(path, result.Output, info.Mode().Perm()); err != nil {
		return fail("write", err)
	}

	result.Written = true

	return result
}

// collectSources expands the arguments into source files. A directory
// contributes its .java files, recursively when written as "dir/..."; a file
// is taken as is. Duplicates are dropped, keeping the first occurrence.
func (w *workflow) collectSources(roots []m.Path) ([]m.Path, error) {
	var paths []m.Path

	seen := make(map[m.Path]bool)

	add := func(p m.Path) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, root := range roots {
		dir, recursive := splitRecursive(root)

		info, err := w.FileInfo(dir)
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(dir)
			continue
		}

		err = w.Walk(dir, recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() && filepath.Ext(path) == javaExt {
				add(m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}

	return paths, nil
}

func splitRecursive(p m.Path) (m.Path, bool) {
	s := string(p)
	if s == "..." {
		return ".", true
	}

	if trimmed, ok := strings.CutSuffix(s, recursiveSuffix); ok {
		if trimmed == "" {
			trimmed = "/"
		}

		return m.Path(trimmed), true
	}

	return p, false
}

// describePlan lists the edits of script with the source line of the node
// each one is attached to.
func describePlan(tree *m.Tree, script m.EditScript) []m.PlanEntry {
	edits := script.Edits()
	plan := make([]m.PlanEntry, 0, len(edits))

	for _, e := range edits {
		entry := m.PlanEntry{Unit: e.Unit, Kind: e.Kind}

		if n, ok := tree.Node(e.Anchor()); ok {
			entry.Line = lineOf(tree.Source(), n.Range.Start)
			entry.Subject = subject(tree, n)
		}

		if e.Node != nil {
			entry.Detail = e.Node.String()
		}

		plan = append(plan, entry)
	}

	return plan
}

func subject(tree *m.Tree, n m.Node) string {
	switch n.Kind {
	case m.KindUnit:
		return string(n.Kind)
	case m.KindMethod, m.KindConstructor, m.KindClass:
		return string(n.Kind) + " " + n.Name
	}

	text := strings.TrimSpace(tree.Text(n.ID))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i]) + " ..."
	}

	if len(text) > planSubjectWidth {
		text = text[:planSubjectWidth-3] + "..."
	}

	return text
}

func lineOf(src []byte, off int) int {
	if off > len(src) {
		off = len(src)
	}

	return strings.Count(string(src[:off]), "\n") + 1
}

// ExportProfile writes the profile to args.Output, or displays it.
func (w *workflow) ExportProfile(ctx context.Context, args ProfileArgs) error {
	if err := args.Profile.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	if args.Output != "" {
		if err := w.SaveProfile(args.Output, args.Profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		return nil
	}

	rendered, err := w.EncodeProfile(args.Profile)
	if err != nil {
		return err
	}

	return w.DisplayProfile(ctx, rendered)
}
