// Package sim provides the HP lattice folding kernel for hpfold.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - conformation.go: the lattice walk, its occupancy index and HP energy
//   - move_engine.go: proposal of VSHD and Pull moves (vshd.go, pull.go)
//   - chain.go: one Metropolis chain; montecarlo.go drives a single chain
//   - remc.go: replica exchange over a temperature ladder (ladder.go)
//
// # Transactional moves
//
// Conformation.TryApply either leaves a self-avoiding, connected walk or
// leaves the conformation untouched. Pull moves journal every placement
// of their cascade and replay the journal backwards on collision.
// Conformation.Undo reverts the last applied move, which is how a
// Metropolis rejection restores the pre-proposal state.
//
// # Randomness
//
// Every engine draws from an explicit *rand.Rand obtained from a
// PartitionedRNG. Each replica owns its generator and exchange decisions
// use their own, so a seeded run reproduces bit-for-bit whether or not
// replicas are stepped in parallel.
//
// Sub-packages:
//   - sim/sequence/: amino-acid to HP classification and FASTA input
//   - sim/trace/: energy trace records, summaries, CSV/JSON export
//   - sim/store/: run persistence (memory, SQLite)
package sim
