// Package prompt asks the user questions on a line-oriented terminal. The
// Prompter interface is what the scaffold flow depends on; Terminal is the
// stdin/stdout implementation with numbered menus.
package prompt
