package search

import "container/heap"

// queueItem is a cell waiting in a priority frontier.
// Items are ordered by Priority, then by Tie.
type queueItem struct {
	Cell         int
	Priority     int
	Tie          int
	IndexInQueue int
}

type priorityQueue []*queueItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].Priority != queue[j].Priority {
		return queue[i].Priority < queue[j].Priority
	}
	return queue[i].Tie < queue[j].Tie
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// frontier wraps priorityQueue with a cell index so entries can be
// decreased in place instead of pushed twice.
type frontier struct {
	queue priorityQueue
	items map[int]*queueItem
}

func newFrontier() *frontier {
	f := &frontier{items: make(map[int]*queueItem)}
	heap.Init(&f.queue)
	return f
}

func (f *frontier) Len() int { return f.queue.Len() }

func (f *frontier) Contains(cell int) bool {
	_, ok := f.items[cell]
	return ok
}

// Upsert inserts cell or updates its ordering key.
func (f *frontier) Upsert(cell, priority, tie int) {
	if item, ok := f.items[cell]; ok {
		item.Priority, item.Tie = priority, tie
		heap.Fix(&f.queue, item.IndexInQueue)
		return
	}
	item := &queueItem{Cell: cell, Priority: priority, Tie: tie}
	heap.Push(&f.queue, item)
	f.items[cell] = item
}

// Peek returns the minimum item without removing it.
func (f *frontier) Peek() *queueItem {
	return f.queue[0]
}

// PopMin removes and returns the minimum item.
func (f *frontier) PopMin() *queueItem {
	item := heap.Pop(&f.queue).(*queueItem)
	delete(f.items, item.Cell)
	return item
}
