package progress

// sampleWindow is a bounded FIFO of (dt, dn) samples. When full, pushing a
// new sample evicts the oldest one. dts and dns always have equal length.
type sampleWindow struct {
	dts   []float64
	dns   []int
	head  int // index of the oldest sample
	count int
}

func newSampleWindow(capacity int) *sampleWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &sampleWindow{
		dts: make([]float64, capacity),
		dns: make([]int, capacity),
	}
}

func (w *sampleWindow) capacity() int { return len(w.dts) }

func (w *sampleWindow) len() int { return w.count }

func (w *sampleWindow) push(dt float64, dn int) {
	if w.count == len(w.dts) {
		w.dts[w.head] = dt
		w.dns[w.head] = dn
		w.head = (w.head + 1) % len(w.dts)
		return
	}
	i := (w.head + w.count) % len(w.dts)
	w.dts[i] = dt
	w.dns[i] = dn
	w.count++
}

// at returns the i-th sample in chronological order, 0 being the oldest.
func (w *sampleWindow) at(i int) (float64, int) {
	j := (w.head + i) % len(w.dts)
	return w.dts[j], w.dns[j]
}

// resize changes the capacity, keeping the newest samples in order.
func (w *sampleWindow) resize(capacity int) {
	if capacity < 1 || capacity == len(w.dts) {
		return
	}
	keep := w.count
	if keep > capacity {
		keep = capacity
	}
	dts := make([]float64, capacity)
	dns := make([]int, capacity)
	skip := w.count - keep
	for i := 0; i < keep; i++ {
		dts[i], dns[i] = w.at(skip + i)
	}
	w.dts, w.dns = dts, dns
	w.head = 0
	w.count = keep
}

func (w *sampleWindow) clear() {
	w.head = 0
	w.count = 0
}
