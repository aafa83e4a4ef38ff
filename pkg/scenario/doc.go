// Package scenario gives positioning problems a file format and a headless
// runner.
//
// A [Scenario] bundles everything one positioning pass needs: viewport
// geometry, the anchor rect, the panel size and constraints, strategy flags,
// and the candidate list. Scenarios load from TOML or JSON files with
// [ReadFile], validate eagerly, and run with [Solve], which wires up
// in-memory adapters around a [overlay.Strategy] and returns the applied
// placement.
//
// The CLI's solve command, the HTTP API, and the scenario stores all speak
// this type, so a scenario authored by hand, posted to the API, or loaded
// from a store behaves identically.
package scenario
