package treesitter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/parser/treesitter"
)

const cardSource = `import React from 'react';
import {Card, Button as Btn} from "@shopify/polaris";
import type {CardProps} from '@shopify/polaris/types';

export function Panel(props: CardProps) {
  return (
    <Card title="x" {...props}>
      <Btn icon={<Icon />}>Go</Btn>
      {props.open && <Card.Section />}
    </Card>
  );
}
`

func parse(t *testing.T, path, src string) *jsast.File {
	t.Helper()

	p := treesitter.New()
	file, err := p.Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)
	require.NotNil(t, file)

	return file
}

func TestParse_Imports(t *testing.T) {
	t.Parallel()

	file := parse(t, "panel.tsx", cardSource)
	assert.Equal(t, "tsx", file.Language)

	imports := file.FindByKind(file.Root, jsast.KindImport)
	require.Len(t, imports, 3)

	react := file.Node(imports[0])
	assert.Equal(t, "react", react.Source)
	assert.Equal(t, "React", react.Default)
	assert.Equal(t, byte('\''), react.Quote)
	assert.False(t, react.NamedSpan.IsValid())
	assert.True(t, react.Semicolon)

	polaris := file.Node(imports[1])
	assert.Equal(t, "@shopify/polaris", polaris.Source)
	assert.Equal(t, byte('"'), polaris.Quote)
	assert.Equal(t, "{Card, Button as Btn}", file.Slice(polaris.NamedSpan))
	assert.False(t, polaris.BracePad)
	require.Len(t, polaris.Children, 2)

	card := file.Node(polaris.Children[0])
	assert.Equal(t, "Card", card.Imported)
	assert.Equal(t, "Card", card.LocalName())
	assert.False(t, card.IsAliased())

	btn := file.Node(polaris.Children[1])
	assert.Equal(t, "Button", btn.Imported)
	assert.Equal(t, "Btn", btn.LocalName())
	assert.Equal(t, "Button as Btn", string(file.Text(polaris.Children[1])))

	types := file.Node(imports[2])
	assert.True(t, types.TypeOnly)
}

func TestParse_Elements(t *testing.T) {
	t.Parallel()

	file := parse(t, "panel.tsx", cardSource)

	elements := file.FindByKind(file.Root, jsast.KindElement)
	names := make([]string, 0, len(elements))
	for _, id := range elements {
		names = append(names, file.Node(id).Name)
	}
	assert.Equal(t, []string{"Card", "Btn", "Icon", "Card.Section"}, names)

	card := file.Node(elements[0])
	assert.False(t, card.SelfClosing)
	assert.Equal(t, "Card", file.Slice(card.NameSpan))
	assert.Equal(t, "Card", file.Slice(card.CloseNameSpan))
	require.Len(t, card.Attrs, 2)
	assert.Equal(t, "title", file.Node(card.Attrs[0]).AttrName)
	assert.Empty(t, file.Node(card.Attrs[1]).AttrName, "spread attribute has no name")
	assert.Equal(t, `{...props}`, string(file.Text(card.Attrs[1])))
	assert.Equal(t, '>', rune(file.Content[card.OpenEnd-1]))
	assert.Equal(t, "</Card>", string(file.Content[card.CloseStart:card.Span.End]))

	icon := file.Node(elements[2])
	assert.True(t, icon.SelfClosing)
	assert.Equal(t, jsast.KindAttribute, file.Kind(icon.Parent))

	section := file.Node(elements[3])
	assert.Equal(t, jsast.KindExpression, file.Kind(section.Parent))
}

func TestParse_Fragment(t *testing.T) {
	t.Parallel()

	file := parse(t, "list.jsx", "const x = <><Card /></>;\n")
	assert.Equal(t, "javascript", file.Language)

	elements := file.FindByKind(file.Root, jsast.KindElement)
	require.Len(t, elements, 2)

	fragment := file.Node(elements[0])
	assert.Empty(t, fragment.Name)
	assert.Equal(t, 0, fragment.NameSpan.Len())
	assert.Equal(t, "Card", file.Node(elements[1]).Name)
	assert.Equal(t, elements[0], file.Node(elements[1]).Parent)
}

func TestParse_Refs(t *testing.T) {
	t.Parallel()

	src := "import {Card} from '@shopify/polaris';\n" +
		"const c = Card;\n" +
		"const o = {Card};\n" +
		"export const A = () => <Card.Section><Card /></Card.Section>;\n"
	file := parse(t, "refs.tsx", src)

	refs := file.RefsTo("Card")
	require.Len(t, refs, 2, "import bindings and tag names are not refs")
	for _, r := range refs {
		assert.Equal(t, "Card", file.Slice(r.Span))
	}
	line, _ := file.LineAt(refs[0].Span.Start)
	assert.Equal(t, 2, line)
	line, _ = file.LineAt(refs[1].Span.Start)
	assert.Equal(t, 3, line)

	assert.Len(t, file.RefsTo("c"), 1)
	assert.Empty(t, file.RefsTo("Section"))
}

func TestParse_SyntaxError(t *testing.T) {
	t.Parallel()

	p := treesitter.New()
	_, err := p.Parse(context.Background(), "broken.tsx", []byte("import {Card from '@shopify/polaris';\nconst = <Card\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, treesitter.ErrSyntax))
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := treesitter.New().Parse(ctx, "a.tsx", []byte("<A/>"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_ContentIsCopied(t *testing.T) {
	t.Parallel()

	src := []byte("import {A} from 'a';\n")
	file, err := treesitter.New().Parse(context.Background(), "a.ts", src)
	require.NoError(t, err)

	src[8] = 'B'
	assert.Equal(t, "import {A} from 'a';\n", string(file.Content))
}

func TestParse_Concurrent(t *testing.T) {
	t.Parallel()

	p := treesitter.New()
	done := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := p.Parse(context.Background(), "panel.tsx", []byte(cardSource))
			done <- err
		}()
	}
	for range 8 {
		require.NoError(t, <-done)
	}
}
