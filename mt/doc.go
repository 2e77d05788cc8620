// Package mt defines the machine-translation stage adapter. The stage is
// polymorphic over a capability set: a local model-backed variant
// (marian) and a remote API-backed variant (openai) for languages
// without local model support. The language spec selects the variant;
// the orchestrator never inspects which one it got.
package mt
