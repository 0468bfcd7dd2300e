package playlist

/*

# Persistent playlists

A playlist is a sequence of song durations. Every edit produces a new
version and every earlier version stays queryable for the life of the
Store. Three constructions exist:

  - Single: a playlist of exactly one song.
  - Concat: one playlist followed by another. Either side may be any
    earlier version, including the same version twice.
  - Replace: an earlier version with the song at one position changed.

Versions are never copied. A Concat node refers to its two operands by
Handle, so concatenating two huge playlists costs one node regardless of
their size. Repeatedly concatenating a version with itself doubles the
length each time, which is why lengths and positions are 256 bit
wideindex.Index values rather than machine integers. The sequence a Handle
denotes is virtual: it is never materialized.

# The arena

Nodes live in an append only arena. A Handle is the node's position in
append order, so handles are issued densely from 0 and version n always
has Handle n. The arena is split into fixed size segments of
2^segmentHeight nodes. A segment, once allocated, never moves, and the
segment directory is replaced wholesale when it grows. Handle h is found
at

	segment h >> segmentHeight, slot h & (2^segmentHeight - 1)

Because published nodes never move or change, readers need no lock. The
single writer fills the slot first, then publishes the new version count,
so a reader that sees h < Len() also sees the node at h.

# Cached totals

Each node caches its Length and its Aggregate (the sum mod P of every
song) when it is created:

	Single   length 1                 aggregate value
	Concat   left.length+right.length aggregate left+right
	Replace  inner.length             aggregate inner+delta

where delta = newValue - Value(inner, position) is computed once, by a
single point lookup, when the Replace node is made.

# Queries

Value walks from a handle to the song at a position. Concat nodes send the
walk left or right using the cached left length, Replace nodes answer
directly when the position matches and otherwise pass through.

Sum answers the total over an inclusive position range. Any node whose
whole range is requested answers from its cached aggregate. Otherwise a
Concat splits the range at its left length:

	left  [from, min(to, leftLength-1)]              if from < leftLength
	right [max(from, leftLength)-leftLength, to-leftLength]   if to >= leftLength

and a Replace adds its delta when its position falls inside the range.

Nothing is ever rebalanced, so the walk is as deep as the chain of
versions that built the handle. Both queries use an explicit work stack
rather than call recursion so that long replace chains cannot exhaust the
goroutine stack.

The query methods check their inputs and return ErrHandleRange,
ErrPositionRange or ErrInvalidRange. Past that boundary the traversal
trusts the cached lengths completely.
*/
