package toolmux

// Package toolmux provides:
//
// - A schema catalog parsed from plain Go argument structs (json/jsonschema tags)
// - Declarative group manifests mapping discriminator values to handlers and schemas
// - Field unification with deterministic collision renames and type-conflict warnings
// - A composite emitter writing one multiplexed args struct and dispatch method per group
// - An idempotent corrective pass for residual discriminator duplicates and stale imports
//
// Design policy:
// - Keep only public APIs in the root package; put rendering internals under internal/.
// - Place the CLI under cmd/toolmux and runnable consumers under examples/.
// - Warnings never stop generation; only unreadable inputs do.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  man, err := toolmux.LoadManifest("toolmux.yaml")
//  code, rep, err := toolmux.Generate(man, toolmux.Options{})
//  err = os.WriteFile(man.Output, code, 0o644)
