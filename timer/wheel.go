/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package timer

import (
	"sync"
	"sync/atomic"

	"github.com/corio/corio/task"
)

// level sizes and granularities, finest first.
const (
	level0Slots = 1000 // 1ms per slot: covers deltas [0, 1s)
	level1Slots = 60   // 1s per slot:  covers deltas [1s, 1min)
	level2Slots = 60   // 1min per slot: covers deltas [1min, 1hr)
	level3Slots = 24   // 1hr per slot: covers deltas [1hr, 1day)
	level4Slots = 365  // 1day per slot: covers deltas [1day, ~1yr)

	level0Tick uint64 = 1
	level1Tick        = level0Tick * level0Slots
	level2Tick        = level1Tick * level1Slots
	level3Tick        = level2Tick * level2Slots
	level4Tick        = level3Tick * level3Slots

	// MaxDelay is the furthest out an entry can be scheduled. Callers
	// asking for longer than this get a deadline clamped to it rather
	// than an error: a roughly one-year wheel has no natural "too far"
	// case worth failing a Sleep call over.
	MaxDelay = level4Tick * level4Slots
)

// level is one ring of the wheel: nslots buckets, each spanning tick wheel
// ticks, plus a cursor marking the slot the wheel most recently reached.
type level struct {
	slots  [][]*entry
	tick   uint64
	cursor int
}

func newLevel(nslots int, tick uint64) level {
	return level{slots: make([][]*entry, nslots), tick: tick}
}

// index returns the slot deadline falls into at this level, given the
// wheel's current time.
func (lv *level) index(now, deadline uint64) int {
	return int((deadline / lv.tick) % uint64(len(lv.slots)))
}

// Wheel is a hierarchical timer wheel: five cascaded rings at 1ms, 1s,
// 1min, 1hr and 1day granularity. Insert and Cancel are O(1); Advance is
// O(1) per tick except on the rare tick where a coarser level wraps and
// must cascade its due slot's entries down into finer levels, mirroring
// the classic Linux kernel / Netty hashed-wheel-timer design.
type Wheel struct {
	mu      sync.Mutex
	now     uint64 // current time, in wheel ticks (1 tick = 1ms)
	levels  [5]level
	entries map[uint64]*entry
	nextID  atomic.Uint64
}

// NewWheel creates an empty wheel with its clock at tick 0.
func NewWheel() *Wheel {
	return &Wheel{
		levels: [5]level{
			newLevel(level0Slots, level0Tick),
			newLevel(level1Slots, level1Tick),
			newLevel(level2Slots, level2Tick),
			newLevel(level3Slots, level3Tick),
			newLevel(level4Slots, level4Tick),
		},
		entries: make(map[uint64]*entry),
	}
}

// Now returns the wheel's current tick.
func (w *Wheel) Now() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.now
}

// Insert schedules waker to fire once the wheel's clock reaches deadline
// (an absolute tick value, typically Now()+delay, clamped to MaxDelay).
// A deadline at or before Now() fires on the next tick. It returns an id
// usable with Cancel.
func (w *Wheel) Insert(deadline uint64, waker task.Waker) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if deadline > w.now+MaxDelay {
		deadline = w.now + MaxDelay
	}
	// Level 0's slot for w.now was already processed by the last Advance,
	// so an already-reached deadline would wait a full revolution there.
	if deadline <= w.now {
		deadline = w.now + 1
	}
	id := w.nextID.Add(1)
	e := &entry{id: id, deadline: deadline, waker: waker}
	w.entries[id] = e
	w.place(e)
	return id
}

// Cancel removes a pending entry before it fires. It reports whether the
// entry was still pending (false if it already fired or was never valid).
func (w *Wheel) Cancel(id uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return false
	}
	delete(w.entries, id)
	e.canceled = true
	return true
}

// place drops e into the coarsest-appropriate slot of the lowest level
// whose span can still reach its deadline from now, falling back to the
// top level (already clamped to MaxDelay by Insert/reinsertion) if the
// delta is too large for every level below it.
func (w *Wheel) place(e *entry) {
	w.placeFrom(e, 0)
}

// placeFrom places e starting the search at level lo. Both Insert (via
// place) and the cascade in tick call it with lo=0.
func (w *Wheel) placeFrom(e *entry, lo int) {
	delta := e.deadline - w.now
	for lvl := lo; lvl < len(w.levels)-1; lvl++ {
		span := w.levels[lvl].tick * uint64(len(w.levels[lvl].slots))
		if delta < span {
			w.insertAtLevel(e, lvl)
			return
		}
	}
	w.insertAtLevel(e, len(w.levels)-1)
}

func (w *Wheel) insertAtLevel(e *entry, lvl int) {
	lv := &w.levels[lvl]
	idx := lv.index(w.now, e.deadline)
	lv.slots[idx] = append(lv.slots[idx], e)
}

// Advance moves the wheel's clock forward to nowTick one tick at a time,
// firing every entry whose deadline has been reached and cascading
// coarser levels down into finer ones whenever their cursor completes a
// revolution. It returns the wakers due to fire, in no particular order;
// the caller is responsible for calling Wake on each.
func (w *Wheel) Advance(nowTick uint64) []task.Waker {
	w.mu.Lock()
	defer w.mu.Unlock()

	var due []task.Waker
	for w.now < nowTick {
		w.now++
		due = w.tick(0, due)
	}
	return due
}

// tick advances level lvl by one of its own ticks (called once per wheel
// tick for level 0; called again for level lvl+1 only when level lvl's
// cursor wraps past the end of its ring). It fires level 0's due slot
// directly and re-places every other level's due slot into finer levels.
func (w *Wheel) tick(lvl int, due []task.Waker) []task.Waker {
	lv := &w.levels[lvl]
	lv.cursor = (lv.cursor + 1) % len(lv.slots)
	bucket := lv.slots[lv.cursor]
	lv.slots[lv.cursor] = nil

	if lvl == 0 {
		for _, e := range bucket {
			due = w.fireOrSkip(e, due)
		}
	} else {
		for _, e := range bucket {
			if e.canceled {
				delete(w.entries, e.id)
				continue
			}
			// A cascaded entry due exactly at w.now would otherwise be
			// re-placed into level 0's current slot, which this tick
			// already processed — it would then sit unfired for a full
			// revolution. Fire it immediately instead of re-placing it.
			if e.deadline <= w.now {
				due = w.fireOrSkip(e, due)
				continue
			}
			w.placeFrom(e, 0)
		}
	}

	if lv.cursor == 0 && lvl+1 < len(w.levels) {
		due = w.tick(lvl+1, due)
	}
	return due
}

func (w *Wheel) fireOrSkip(e *entry, due []task.Waker) []task.Waker {
	delete(w.entries, e.id)
	if e.canceled {
		return due
	}
	return append(due, e.waker)
}

// Len reports the number of entries still pending.
func (w *Wheel) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}
