// Package mutexpool recycles the blocking nodes used by inflated (fat) locks.
//
// A MutexNode is a binary semaphore built from sync.Mutex and sync.Cond. Unlike
// sync.Mutex it may be released by a goroutine other than the one that
// acquired it, which is exactly what a lock hand-off needs: the waiter parks
// on the node and the previous owner releases it.
//
// # Free-list
//
// Pool keeps idle nodes on a Treiber stack. The head is a single 64-bit word
// packing a 32-bit tag and a 32-bit node index:
//
//	head = tag<<32 | index   (index 0 = empty)
//
// Every successful push or pop bumps the tag, so a pop that read a stale
// head/next pair cannot succeed after the same node was popped and pushed
// back in the meantime (the ABA problem of reused nodes). Indices resolve
// through a lock-free chunk table so that no allocation happens on the
// push/pop path.
//
// # Growth
//
// Allocate never blocks: when the free-list is empty a new node is
// constructed. The pool has no upper bound and no shrink policy; nodes come
// back only when an inflated lock deflates. Once the chunk table is full
// (65536 nodes) further nodes are untracked and are left to the GC when
// released.
//
// # Thread Safety
//
// All Pool methods are lock-free and safe for concurrent use.
package mutexpool
