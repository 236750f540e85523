// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

// FrameID is the identifier of a frame in the buffer pool.
type FrameID int32

// ClockReplacer picks victim frames with the clock algorithm.
type ClockReplacer struct {
	cList     *circularList
	clockHand **node
}

// Victim removes the victim frame as defined by the replacement policy.
func (c *ClockReplacer) Victim() *FrameID {
	if c.cList.size == 0 {
		return nil
	}

	var victimFrameID *FrameID
	currentNode := *c.clockHand
	for {
		if currentNode.value {
			currentNode.value = false
			c.clockHand = &currentNode.next
			currentNode = *c.clockHand
		} else {
			frameID := currentNode.key
			victimFrameID = &frameID

			c.clockHand = &currentNode.next

			c.cList.remove(currentNode.key)
			return victimFrameID
		}
	}
}

// Unpin unpins a frame, indicating that it can now be victimized.
func (c *ClockReplacer) Unpin(id FrameID) {
	if !c.cList.hasKey(id) {
		c.cList.insert(id, true)
		if c.cList.size == 1 {
			c.clockHand = &c.cList.head
		}
	}
}

// Pin pins a frame, indicating that it should not be victimized until it is unpinned.
func (c *ClockReplacer) Pin(id FrameID) {
	node, ok := c.cList.supportMap[id]
	if !ok {
		return
	}

	if (*c.clockHand) == node {
		c.clockHand = &(*c.clockHand).next
	}
	c.cList.remove(id)
}

// Size returns the size of the clock.
func (c *ClockReplacer) Size() uint32 {
	return c.cList.size
}

// NewClockReplacer instantiates a new clock replacer.
func NewClockReplacer(poolSize uint32) *ClockReplacer {
	cList := newCircularList(poolSize)
	return &ClockReplacer{cList, &cList.head}
}
