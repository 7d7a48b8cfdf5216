// Package policy is the authorization and invariant-enforcement core of the
// CarWise data layer. It decides, for every read and write, whether a given
// principal (anonymous visitor, authenticated owner, or administrator) may
// perform it, and clamps writes that would touch fields the principal does
// not own.
//
// The pieces, in dependency order:
//
//   - Principal: the resolved identity of the caller for one request,
//     carried on the context with set-once semantics.
//   - Resolver: turns an opaque access token into a Principal. Resolution
//     failure yields Anonymous, never an error.
//   - AdminOracle: a privileged, non-recursive role lookup usable inside
//     rules without re-entering the evaluator.
//   - rule_*.go: one file of pure boolean predicates per resource type.
//     Rules decide whether an operation proceeds; they never rewrite data.
//   - Hooks: post-predicate clamps and derivations (role immutability,
//     owner-field immutability, sold-timestamp, updated-at) that run in a
//     fixed order regardless of caller input.
//   - Evaluator: the gate that runs rule → hooks → invariant check for
//     writes, and exposes rules as row filters for reads. Filtered reads
//     surface as "not found", never as a denial, so row existence does not
//     leak.
package policy
