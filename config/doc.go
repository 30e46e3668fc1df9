// Package config loads the CLI's control structure (§6) into typed Go
// values and compiles its declarative generator expressions into an
// eventtree.Generator tree, bridging the external control-file surface to
// the simulation core. Loading is done with spf13/viper; compilation
// walks the decoded RawGenerator/RawInstruction values against a
// Registry of named treatment constructors.
package config
