package hashtree

/*
Package hashtree maintains a balanced binary hash tree over an ordered record
collection and issues compact authentication paths for individual records.

The tree is array backed. Level 0 holds the leaf hashes in record insertion
order, and each level above holds the pairwise combination of the level below,
until a single root remains:

	2        root = H( H(h(A)‖h(B)) ‖ H(h(C)‖h(D)) )
	         /            \
	1    H(h(A)‖h(B))   H(h(C)‖h(D))
	      /    \          /    \
	0   h(A)  h(B)     h(C)   h(D)

Two policies are fixed and form part of the root's definition. They must never
vary between the full build and the incremental update paths:

 1. Leaf ordering is the insertion order of the record sequence given to
    Build. Identical sequences always reproduce identical roots.

 2. An unpaired trailing node at any level is promoted, unchanged, to the next
    level. It is never duplicated, so the apparent record count is never
    inflated. For three leaves a, b, c:

	2        root = H( H(h(a)‖h(b)) ‖ h(c) )
	         /            \
	1    H(h(a)‖h(b))     h(c)   <- promoted, not paired with itself
	      /    \
	0   h(a)  h(b)       h(c)

Leaf hashes commit to the record's canonical serialization, so any change to a
record's bytes, position or to the leaf count changes the root.

A Tree value is an immutable snapshot once returned. The mutating operations
(ApplyIncremental, ApplyModification, ApplyRebuild, Update) are copy on write:
they return a new Tree sharing the unaffected level prefixes, so readers
holding an older Tree never observe a half updated structure. Reads require no
synchronisation provided callers do not share a Tree with a concurrent writer
mutating the same value, which the copy on write discipline already rules out.
*/
