/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package object

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"dirpx.dev/objbase/ilist"
)

var (
	created   atomic.Uint64
	destroyed atomic.Uint64
)

// live holds every object created while Config.TrackAllocations was set,
// threaded through Base.track.
var live = struct {
	sync.Mutex
	list *ilist.List[Base]
}{
	list: ilist.New(func(b *Base) *ilist.Link[Base] { return &b.track }),
}

func track(b *Base) {
	live.Lock()
	live.list.PushBack(b)
	live.Unlock()
}

func untrack(b *Base) {
	live.Lock()
	if b.track.Linked() {
		live.list.Remove(b)
	}
	live.Unlock()
}

// Stats counts objects since process start.
type Stats struct {
	Created   uint64
	Destroyed uint64
	// Live is Created minus Destroyed, whether tracked or not.
	Live uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("created %s, destroyed %s, live %s",
		humanize.Comma(int64(s.Created)), humanize.Comma(int64(s.Destroyed)), humanize.Comma(int64(s.Live)))
}

// ReadStats returns the current counters.
func ReadStats() Stats {
	d := destroyed.Load()
	c := created.Load()
	return Stats{Created: c, Destroyed: d, Live: c - d}
}

// Walk calls fn for each tracked live object, oldest first, until fn
// returns false. Each object is kept alive for the duration of its call;
// fn runs without the tracker lock held and may create or release objects.
func Walk(fn func(Object) bool) {
	var snap []Ref[Object]
	live.Lock()
	for b := range live.list.All() {
		if r, ok := (Weak[Object]{obj: b.self, base: b}).Lock(); ok {
			snap = append(snap, r)
		}
	}
	live.Unlock()

	stopped := false
	for i := range snap {
		if !stopped && !fn(snap[i].Get()) {
			stopped = true
		}
		snap[i].Release()
	}
}

// Outstanding returns the IDs of tracked live objects, oldest first.
func Outstanding() []string {
	var ids []string
	live.Lock()
	for b := range live.list.All() {
		ids = append(ids, b.ObjectID())
	}
	live.Unlock()
	return ids
}

// ReportLeaks logs every tracked live object at warning level and returns
// how many there were.
func ReportLeaks() int {
	ids := Outstanding()
	for _, id := range ids {
		log.Warningf("outstanding object %s", id)
	}
	if len(ids) > 0 {
		log.Warningf("%s outstanding objects (%s)", humanize.Comma(int64(len(ids))), ReadStats())
	}
	return len(ids)
}
