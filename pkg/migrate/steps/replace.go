package steps

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/jsxmigrate/pkg/imports"
	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/jsx"
	"github.com/yaklabco/jsxmigrate/pkg/migrate"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
)

// ErrInvalidDescriptor is returned when a step descriptor cannot produce a step.
var ErrInvalidDescriptor = errors.New("invalid step descriptor")

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Descriptor declares a component replacement.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	From        string // component imported today
	To          string // component replacing it
	Wrapper     string // optional component wrapping the children of every usage
	Pattern     pathpattern.Pattern
	Tags        []string
}

func (d Descriptor) validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidDescriptor)
	case !identifier.MatchString(d.From):
		return fmt.Errorf("%w: %s: from %q is not an identifier", ErrInvalidDescriptor, d.ID, d.From)
	case !identifier.MatchString(d.To):
		return fmt.Errorf("%w: %s: to %q is not an identifier", ErrInvalidDescriptor, d.ID, d.To)
	case d.From == d.To:
		return fmt.Errorf("%w: %s: from and to are both %q", ErrInvalidDescriptor, d.ID, d.From)
	case d.Wrapper != "" && !identifier.MatchString(d.Wrapper):
		return fmt.Errorf("%w: %s: wrapper %q is not an identifier", ErrInvalidDescriptor, d.ID, d.Wrapper)
	case d.Pattern.IsZero():
		return fmt.Errorf("%w: %s: missing pattern", ErrInvalidDescriptor, d.ID)
	}
	return nil
}

// ReplaceComponent replaces one imported component with another, rewriting
// the import declaration and every element usage, and optionally wraps the
// children of each usage in a wrapper component.
type ReplaceComponent struct {
	migrate.BaseStep
	from    string
	to      string
	wrapper string
}

// NewReplaceComponent creates a ReplaceComponent step from d.
func NewReplaceComponent(d Descriptor) (*ReplaceComponent, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = fmt.Sprintf("Replace %s with %s", d.From, d.To)
	}
	if d.Description == "" {
		d.Description = describe(d)
	}
	return &ReplaceComponent{
		BaseStep: migrate.NewBaseStep(d.ID, d.Name, d.Description, d.Tags, d.Pattern),
		from:     d.From,
		to:       d.To,
		wrapper:  d.Wrapper,
	}, nil
}

// NewRenameComponent creates a step that renames a component import and its
// usages without wrapping anything.
func NewRenameComponent(d Descriptor) (*ReplaceComponent, error) {
	d.Wrapper = ""
	if d.Name == "" {
		d.Name = fmt.Sprintf("Rename %s to %s", d.From, d.To)
	}
	return NewReplaceComponent(d)
}

func describe(d Descriptor) string {
	desc := fmt.Sprintf("Replaces %s imported from %s with %s", d.From, d.Pattern, d.To)
	if d.Wrapper != "" {
		desc += fmt.Sprintf(" and wraps the children of each usage in %s", d.Wrapper)
	}
	return desc
}

// From returns the component being replaced.
func (s *ReplaceComponent) From() string { return s.from }

// To returns the replacement component.
func (s *ReplaceComponent) To() string { return s.to }

// Wrapper returns the wrapper component, or "".
func (s *ReplaceComponent) Wrapper() string { return s.wrapper }

// Run rewrites ctx.File. A file that does not import From is left alone,
// which also makes a second run over migrated output a no-op.
func (s *ReplaceComponent) Run(ctx *migrate.StepContext) (*migrate.Change, error) {
	change := &migrate.Change{StepID: s.ID()}
	file := ctx.File

	index := ctx.Index()
	bindings := index.BindingsOf(s.from)
	if len(bindings) == 0 {
		return change, nil
	}
	s.warnAmbiguous(ctx, index, change)

	// Everything below reads bindings captured before the first mutation.
	wrapperImported := s.wrapper != "" && index.HasSpecifier(s.wrapper)

	kept, err := s.normalizeImports(ctx, index, change)
	if err != nil {
		return nil, err
	}
	retags := s.retags(ctx, bindings, kept)

	// Collected before any tag changes.
	usages := make([][]jsast.NodeID, len(retags))
	total := 0
	for i, rt := range retags {
		usages[i] = jsx.FindUsages(file, rt.old)
		total += len(usages[i])
	}

	wrapperTag := ""
	if total > 0 && s.wrapper != "" && !wrapperImported {
		tag, err := s.addWrapper(ctx, change)
		if err != nil {
			return nil, err
		}
		wrapperTag = tag
	}

	for i, rt := range retags {
		if err := s.rewrite(ctx, change, usages[i], rt, wrapperTag); err != nil {
			return nil, err
		}
		if rt.tag != rt.old {
			warnStale(file, change, rt.old)
		}
	}

	ctx.Logger.Debug("rewrote usages", "count", total, "locals", len(retags))
	return change, nil
}

// retag maps a local name bound to From before the run onto the tag its
// usages carry afterwards.
type retag struct {
	old string
	tag string
}

// normalizeImports makes To the imported name in every matching
// declaration. The first From specifier is renamed in place unless To is
// already imported; every other one is removed. It returns the specifiers
// renamed in place.
func (s *ReplaceComponent) normalizeImports(
	ctx *migrate.StepContext,
	index *imports.Index,
	change *migrate.Change,
) (map[jsast.NodeID]bool, error) {
	file := ctx.File
	kept := make(map[jsast.NodeID]bool)

	for {
		binding, ok := index.Binding(s.from)
		if !ok {
			return kept, nil
		}

		if index.HasSpecifier(s.to) {
			if !imports.RemoveSpecifier(file, s.from, ctx.Pattern) {
				return kept, nil
			}
			change.Record(file, migrate.EditImportRemoved, binding.Declaration, s.from)
			continue
		}

		renamed, err := imports.RenameSpecifier(file, s.from, s.to, ctx.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rename import %s: %w", s.from, err)
		}
		if !renamed {
			return kept, nil
		}
		kept[binding.Specifier] = true
		change.Record(file, migrate.EditImportRenamed, binding.Specifier, s.from+" -> "+s.to)
	}
}

// retags resolves the new tag of every distinct local From was bound to.
// A specifier renamed in place keeps its local name; the locals of removed
// specifiers take the local name of To.
func (s *ReplaceComponent) retags(
	ctx *migrate.StepContext, bindings []imports.Binding, kept map[jsast.NodeID]bool,
) []retag {
	fallback := s.to
	if local, ok := ctx.Index().LocalNameOf(s.to); ok {
		fallback = local
	}

	out := make([]retag, 0, len(bindings))
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if seen[b.Local] {
			continue
		}
		seen[b.Local] = true

		tag := fallback
		if kept[b.Specifier] {
			tag = ctx.File.Node(b.Specifier).LocalName()
		}
		out = append(out, retag{old: b.Local, tag: tag})
	}
	return out
}

// rewrite renames the usages of one old local and wraps their children.
func (s *ReplaceComponent) rewrite(
	ctx *migrate.StepContext, change *migrate.Change, usages []jsast.NodeID, rt retag, wrapperTag string,
) error {
	file := ctx.File

	for _, usage := range usages {
		if ctx.Cancelled() {
			return fmt.Errorf("step cancelled: %w", ctx.Ctx.Err())
		}

		if rt.tag != rt.old {
			if err := jsx.RenameTag(file, usage, rt.tag); err != nil {
				return err
			}
			change.Record(file, migrate.EditTagRenamed, usage, rt.old+" -> "+rt.tag)
		}

		if wrapperTag == "" {
			continue
		}
		_, err := jsx.WrapChildren(file, usage, wrapperTag)
		switch {
		case errors.Is(err, jsx.ErrAlreadyWrapped):
			continue
		case err != nil:
			return err
		}
		change.Record(file, migrate.EditChildrenWrapped, usage, "children of <"+rt.tag+"> in <"+wrapperTag+">")
	}
	return nil
}

func (s *ReplaceComponent) addWrapper(ctx *migrate.StepContext, change *migrate.Change) (string, error) {
	added, err := imports.AddSpecifier(ctx.File, s.wrapper, ctx.Pattern)
	if err != nil {
		return "", fmt.Errorf("add import %s: %w", s.wrapper, err)
	}

	index := ctx.Index()
	if added {
		spec, _ := index.Specifier(s.wrapper)
		change.Record(ctx.File, migrate.EditImportAdded, declarationOf(ctx.File, spec), s.wrapper)
	}

	if local, ok := index.LocalNameOf(s.wrapper); ok {
		return local, nil
	}
	return s.wrapper, nil
}

func (s *ReplaceComponent) warnAmbiguous(ctx *migrate.StepContext, index *imports.Index, change *migrate.Change) {
	for _, amb := range index.Ambiguities() {
		// Every binding of From is rewritten, so only To and the wrapper
		// resolve through a single local.
		if amb.Imported != s.to && amb.Imported != s.wrapper {
			continue
		}
		err := fmt.Errorf("%w: %s is imported as %v; using %s", migrate.ErrAmbiguousBinding, amb.Imported, amb.Locals, amb.Locals[0])
		change.Warn(err.Error())
		ctx.Logger.Debug("ambiguous binding", "name", amb.Imported, "locals", amb.Locals)
	}
}

// warnStale reports references to a retired local that tag rewriting does
// not reach: member tags such as <Card.Section> and plain value uses.
func warnStale(file *jsast.File, change *migrate.Change, local string) {
	first, count := -1, 0
	note := func(offset int) {
		count++
		if first < 0 || offset < first {
			first = offset
		}
	}

	for _, id := range file.FindByKind(file.Root, jsast.KindElement) {
		if n := file.Node(id); strings.HasPrefix(n.Name, local+".") {
			note(n.Span.Start)
		}
	}
	for _, ref := range file.RefsTo(local) {
		note(ref.Span.Start)
	}

	if count == 0 {
		return
	}
	line, _ := file.LineAt(first)
	change.Warn(fmt.Sprintf("%d reference(s) to %s were not rewritten, first at line %d", count, local, line))
}

func declarationOf(file *jsast.File, spec jsast.NodeID) jsast.NodeID {
	if n := file.Node(spec); n != nil {
		return n.Parent
	}
	return jsast.NoNode
}
