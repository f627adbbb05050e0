package printer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsxmigrate/pkg/imports"
	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/jsx"
	"github.com/yaklabco/jsxmigrate/pkg/parser/treesitter"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
	"github.com/yaklabco/jsxmigrate/pkg/printer"
)

var polaris = pathpattern.Literal("@shopify/polaris")

func parse(t *testing.T, src string) *jsast.File {
	t.Helper()

	file, err := treesitter.New().Parse(context.Background(), "test.tsx", []byte(src))
	require.NoError(t, err)
	return file
}

func printFile(t *testing.T, file *jsast.File) string {
	t.Helper()

	out, err := printer.Print(file)
	require.NoError(t, err)
	return string(out)
}

func renameAll(t *testing.T, file *jsast.File, from, to string) {
	t.Helper()

	for _, usage := range jsx.FindUsages(file, from) {
		require.NoError(t, jsx.RenameTag(file, usage, to))
	}
}

func TestPrint_Unchanged(t *testing.T) {
	t.Parallel()

	src := "import {Card} from '@shopify/polaris';\n\n// keep\nexport const A = () => <Card title=\"x\">\n  hi\n</Card>;\n"
	file := parse(t, src)

	edits, err := printer.Edits(file)
	require.NoError(t, err)
	assert.Empty(t, edits)
	assert.Equal(t, src, printFile(t, file))
}

func TestPrint_Elements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		mutate func(t *testing.T, file *jsast.File)
		want   string
	}{
		{
			name: "rename paired element",
			src:  "const a = <Card title=\"x\" {...rest}>\n  <p>hi</p>\n</Card>;\n",
			mutate: func(t *testing.T, file *jsast.File) {
				renameAll(t, file, "Card", "AlphaCard")
			},
			want: "const a = <AlphaCard title=\"x\" {...rest}>\n  <p>hi</p>\n</AlphaCard>;\n",
		},
		{
			name: "rename self-closing element",
			src:  "const a = <Card sectioned />;\n",
			mutate: func(t *testing.T, file *jsast.File) {
				renameAll(t, file, "Card", "AlphaCard")
			},
			want: "const a = <AlphaCard sectioned />;\n",
		},
		{
			name: "rename nested usages",
			src:  "const a = (\n  <Card>\n    <Card>inner</Card>\n  </Card>\n);\n",
			mutate: func(t *testing.T, file *jsast.File) {
				renameAll(t, file, "Card", "AlphaCard")
			},
			want: "const a = (\n  <AlphaCard>\n    <AlphaCard>inner</AlphaCard>\n  </AlphaCard>\n);\n",
		},
		{
			name: "wrap children of paired element",
			src:  "const a = <Card>\n  <p>hi</p>\n</Card>;\n",
			mutate: func(t *testing.T, file *jsast.File) {
				for _, usage := range jsx.FindUsages(file, "Card") {
					require.NoError(t, jsx.RenameTag(file, usage, "AlphaCard"))
					_, err := jsx.WrapChildren(file, usage, "AlphaStack")
					require.NoError(t, err)
				}
			},
			want: "const a = <AlphaCard><AlphaStack>\n  <p>hi</p>\n</AlphaStack></AlphaCard>;\n",
		},
		{
			name: "wrap self-closing element",
			src:  "const a = <Card title=\"x\" />;\n",
			mutate: func(t *testing.T, file *jsast.File) {
				for _, usage := range jsx.FindUsages(file, "Card") {
					require.NoError(t, jsx.RenameTag(file, usage, "AlphaCard"))
					_, err := jsx.WrapChildren(file, usage, "AlphaStack")
					require.NoError(t, err)
				}
			},
			want: "const a = <AlphaCard title=\"x\"><AlphaStack/></AlphaCard>;\n",
		},
		{
			name: "wrap multi-line self-closing element",
			src:  "const a = (\n  <Card\n    title=\"x\"\n  />\n);\n",
			mutate: func(t *testing.T, file *jsast.File) {
				for _, usage := range jsx.FindUsages(file, "Card") {
					require.NoError(t, jsx.RenameTag(file, usage, "AlphaCard"))
					_, err := jsx.WrapChildren(file, usage, "AlphaStack")
					require.NoError(t, err)
				}
			},
			want: "const a = (\n  <AlphaCard\n    title=\"x\"\n  ><AlphaStack/></AlphaCard>\n);\n",
		},
		{
			name: "element inside attribute and expression",
			src:  "const a = <Page icon={<Card />}>{ok && <Card>x</Card>}</Page>;\n",
			mutate: func(t *testing.T, file *jsast.File) {
				renameAll(t, file, "Card", "AlphaCard")
			},
			want: "const a = <Page icon={<AlphaCard />}>{ok && <AlphaCard>x</AlphaCard>}</Page>;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := parse(t, tt.src)
			tt.mutate(t, file)
			assert.Equal(t, tt.want, printFile(t, file))
		})
	}
}

func TestPrint_Imports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		mutate func(t *testing.T, file *jsast.File)
		want   string
	}{
		{
			name: "rename specifier",
			src:  "import {Button, Card} from '@shopify/polaris';\n",
			mutate: func(t *testing.T, file *jsast.File) {
				_, err := imports.RenameSpecifier(file, "Card", "AlphaCard", polaris)
				require.NoError(t, err)
			},
			want: "import {Button, AlphaCard} from '@shopify/polaris';\n",
		},
		{
			name: "rename aliased specifier keeps alias",
			src:  "import {Card as MyCard} from '@shopify/polaris';\n",
			mutate: func(t *testing.T, file *jsast.File) {
				_, err := imports.RenameSpecifier(file, "Card", "AlphaCard", polaris)
				require.NoError(t, err)
			},
			want: "import {AlphaCard as MyCard} from '@shopify/polaris';\n",
		},
		{
			name: "rename then add keeps brace style",
			src:  "import { Card } from \"@shopify/polaris\";\n",
			mutate: func(t *testing.T, file *jsast.File) {
				_, err := imports.RenameSpecifier(file, "Card", "AlphaCard", polaris)
				require.NoError(t, err)
				_, err = imports.AddSpecifier(file, "AlphaStack", polaris)
				require.NoError(t, err)
			},
			want: "import { AlphaCard, AlphaStack } from \"@shopify/polaris\";\n",
		},
		{
			name: "multi-line list",
			src:  "import {\n  Button,\n  Card,\n} from '@shopify/polaris';\n",
			mutate: func(t *testing.T, file *jsast.File) {
				imports.RemoveSpecifier(file, "Card", polaris)
				_, err := imports.AddSpecifier(file, "AlphaCard", polaris)
				require.NoError(t, err)
			},
			want: "import {\n  Button,\n  AlphaCard,\n} from '@shopify/polaris';\n",
		},
		{
			name: "remove whole declaration",
			src:  "import {Card} from '@shopify/polaris';\nimport {AlphaCard} from '@shopify/polaris';\n",
			mutate: func(t *testing.T, file *jsast.File) {
				require.True(t, imports.RemoveSpecifier(file, "Card", polaris))
			},
			want: "import {AlphaCard} from '@shopify/polaris';\n",
		},
		{
			name: "remove last named keeps default",
			src:  "import Polaris, {Card} from '@shopify/polaris';\n",
			mutate: func(t *testing.T, file *jsast.File) {
				require.True(t, imports.RemoveSpecifier(file, "Card", polaris))
			},
			want: "import Polaris from '@shopify/polaris';\n",
		},
		{
			name: "default import grows named list",
			src:  "import Polaris from '@shopify/polaris';\n",
			mutate: func(t *testing.T, file *jsast.File) {
				_, err := imports.AddSpecifier(file, "AlphaStack", polaris)
				require.NoError(t, err)
			},
			want: "import Polaris, {AlphaStack} from '@shopify/polaris';\n",
		},
		{
			name: "synthesise after last import",
			src:  "import React from 'react';\n\nconst a = <Card/>;\n",
			mutate: func(t *testing.T, file *jsast.File) {
				_, err := imports.AddSpecifier(file, "AlphaStack", polaris)
				require.NoError(t, err)
			},
			want: "import React from 'react';\nimport {AlphaStack} from '@shopify/polaris';\n\nconst a = <Card/>;\n",
		},
		{
			name: "synthesise at top of file",
			src:  "const a = <Card/>;\n",
			mutate: func(t *testing.T, file *jsast.File) {
				_, err := imports.AddSpecifier(file, "AlphaStack", polaris)
				require.NoError(t, err)
				_, err = imports.AddSpecifier(file, "AlphaCard", polaris)
				require.NoError(t, err)
			},
			want: "import {AlphaStack, AlphaCard} from '@shopify/polaris';\nconst a = <Card/>;\n",
		},
		{
			name: "other modules untouched",
			src:  "import {Card} from 'other-ui';\nimport {Button} from '@shopify/polaris';\n",
			mutate: func(t *testing.T, file *jsast.File) {
				_, err := imports.AddSpecifier(file, "Card", polaris)
				require.NoError(t, err)
			},
			want: "import {Card} from 'other-ui';\nimport {Button, Card} from '@shopify/polaris';\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := parse(t, tt.src)
			tt.mutate(t, file)
			assert.Equal(t, tt.want, printFile(t, file))
		})
	}
}
