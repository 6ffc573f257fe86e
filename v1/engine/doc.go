// Package engine defines the capability interface every search engine backend
// implements, plus the optional capabilities (Truncater, Deployer) discovered
// by type assertion.
//
// The interface is deliberately narrow: exactly the operations the bootstrap
// procedure performs: one readiness probe, index existence/creation, a
// document count, dense-vector field registration, and one bulk load. Engine
// packages own all protocol details; the bootstrap runner owns all policy
// (retry budgets, count-gate semantics, forced reindex).
package engine
