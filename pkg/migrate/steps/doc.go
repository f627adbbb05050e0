// Package steps provides the built-in migration steps for jsxmigrate.
//
// # Steps
//
//   - replace-card-component: replaces Card imported from @shopify/polaris
//     with AlphaCard and wraps the children of every usage in AlphaStack.
//
// Configuration can declare further component replacements under
// "migrations". Entries with a wrapper become ReplaceComponent steps;
// entries without one become RenameComponent steps.
//
// # Registration
//
// Built-in steps are registered with the default registry via RegisterAll.
// Config-declared steps are added to a cloned registry via
// RegisterMigrations so that DefaultRegistry stays unchanged.
package steps
