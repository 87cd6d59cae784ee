// Package submodules reads the submodule registry a parent repository keeps in .gitmodules.
package submodules
