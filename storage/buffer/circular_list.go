// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

type frameNode struct {
	frameID    FrameID
	referenced bool
	next       *frameNode
	prev       *frameNode
}

// circularList is the ring the clock hand sweeps. Nodes are also
// indexed by frame id so insert and remove stay O(1).
type circularList struct {
	head     *frameNode
	tail     *frameNode
	size     uint32
	capacity uint32
	nodes    map[FrameID]*frameNode
}

func newCircularList(capacity uint32) *circularList {
	return &circularList{nodes: make(map[FrameID]*frameNode), capacity: capacity}
}

func (c *circularList) find(frameID FrameID) *frameNode {
	return c.nodes[frameID]
}

func (c *circularList) insert(frameID FrameID, referenced bool) {
	if node, ok := c.nodes[frameID]; ok {
		node.referenced = referenced
		return
	}

	if c.size == c.capacity {
		panic("circularList::insert capacity is full")
	}

	newNode := &frameNode{frameID: frameID, referenced: referenced}
	if c.size == 0 {
		newNode.next = newNode
		newNode.prev = newNode
		c.head = newNode
		c.tail = newNode
	} else {
		newNode.next = c.head
		newNode.prev = c.tail
		c.tail.next = newNode
		c.head.prev = newNode
		c.tail = newNode
	}
	c.nodes[frameID] = newNode
	c.size++
}

func (c *circularList) remove(frameID FrameID) {
	node, ok := c.nodes[frameID]
	if !ok {
		return
	}

	if c.size == 1 {
		c.head = nil
		c.tail = nil
	} else {
		if node == c.head {
			c.head = node.next
		}
		if node == c.tail {
			c.tail = node.prev
		}
		node.next.prev = node.prev
		node.prev.next = node.next
	}

	delete(c.nodes, frameID)
	c.size--
}
