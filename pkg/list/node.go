package list

// Node represents a node in the doubly linked list. Its links are only mutated by the owning DoublyLinkedList.
type Node[T any] struct {
	next  *Node[T]
	prev  *Node[T]
	value T
}

// Value returns the value stored in the node.
func (n *Node[T]) Value() T {
	return n.value
}

// Next returns the next node in the list or nil if n is the tail.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Prev returns the previous node in the list or nil if n is the head.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

func (n *Node[T]) setNext(next *Node[T]) {
	n.next = next
}

func (n *Node[T]) setPrev(prev *Node[T]) {
	n.prev = prev
}

// insertAfter splices `node` right after n; `l` must be the list owning n.
func (n *Node[T]) insertAfter(node *Node[T], l *DoublyLinkedList[T]) {
	node.setPrev(n)
	node.setNext(n.next)
	if n.next != nil {
		n.next.setPrev(node)
	} else { // n was the tail.
		l.tail = node
	}
	n.setNext(node)
}

// insertBefore splices `node` right before n; `l` must be the list owning n.
func (n *Node[T]) insertBefore(node *Node[T], l *DoublyLinkedList[T]) {
	node.setNext(n)
	node.setPrev(n.prev)
	if n.prev != nil {
		n.prev.setNext(node)
	} else { // n was the head.
		l.head = node
	}
	n.setPrev(node)
}

// removeNode unlinks n from `l` by connecting its neighbours directly.
func (n *Node[T]) removeNode(l *DoublyLinkedList[T]) {
	if n.prev != nil {
		n.prev.setNext(n.next)
	} else {
		// Node is the head.
		l.head = n.next
	}

	if n.next != nil {
		n.next.setPrev(n.prev)
	} else {
		// Node is the tail.
		l.tail = n.prev
	}

	// Clean up the removed node's pointers.
	n.next = nil
	n.prev = nil
}
