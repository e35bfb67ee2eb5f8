// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

// FrameID is the type for frame id
type FrameID uint32

// ClockReplacer tracks the unpinned frames and picks eviction victims
// with a second chance sweep. Only frames that have been Unpinned and
// not re-Pinned are candidates.
type ClockReplacer struct {
	ring      *circularList
	clockHand **frameNode
}

// NewClockReplacer instantiates a new clock replacer
func NewClockReplacer(poolSize uint32) *ClockReplacer {
	ring := newCircularList(poolSize)
	return &ClockReplacer{ring, &ring.head}
}

// Victim removes and returns the next victim frame. A frame whose
// reference bit is set gets a second chance, the bit is cleared and the
// hand moves on. Returns nil when no frame is evictable.
func (c *ClockReplacer) Victim() *FrameID {
	if c.ring.size == 0 {
		return nil
	}

	currentNode := *c.clockHand
	for {
		if currentNode.referenced {
			currentNode.referenced = false
			c.clockHand = &currentNode.next
			currentNode = currentNode.next
		} else {
			frameID := currentNode.frameID
			c.clockHand = &currentNode.next
			c.ring.remove(currentNode.frameID)
			return &frameID
		}
	}
}

// Unpin adds a frame to the candidate set, its pin count reached zero
func (c *ClockReplacer) Unpin(frameID FrameID) {
	if c.ring.find(frameID) == nil {
		c.ring.insert(frameID, true)
		if c.ring.size == 1 {
			c.clockHand = &c.ring.head
		}
	}
}

// Pin removes a frame from the candidate set, it is in use again
func (c *ClockReplacer) Pin(frameID FrameID) {
	node := c.ring.find(frameID)
	if node == nil {
		return
	}

	if *c.clockHand == node {
		c.clockHand = &(*c.clockHand).next
	}
	c.ring.remove(frameID)
}

// Size returns the number of evictable frames
func (c *ClockReplacer) Size() uint32 {
	return c.ring.size
}
