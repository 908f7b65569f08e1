package gesture

// Contact is one active pointer, touch or pen input.
type Contact struct {
	ID     int
	X, Y   float64
	Device DeviceKind
}

// registry tracks active contacts in arrival order. Contact counts are tiny
// (a hand has ten fingers), so a slice beats a map here.
type registry struct {
	contacts []Contact
}

func (r *registry) index(id int) int {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

// acquire adds a contact, or repositions it if the id is already active
// (a duplicated start from the platform).
func (r *registry) acquire(id int, x, y float64, device DeviceKind) {
	if i := r.index(id); i >= 0 {
		r.contacts[i].X, r.contacts[i].Y = x, y
		return
	}
	r.contacts = append(r.contacts, Contact{ID: id, X: x, Y: y, Device: device})
}

// update moves a known contact and reports whether it was known.
func (r *registry) update(id int, x, y float64) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.contacts[i].X, r.contacts[i].Y = x, y
	return true
}

// release removes a contact. Unknown ids are ignored.
func (r *registry) release(id int) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	copy(r.contacts[i:], r.contacts[i+1:])
	r.contacts[len(r.contacts)-1] = Contact{}
	r.contacts = r.contacts[:len(r.contacts)-1]
	return true
}

func (r *registry) get(id int) (Contact, bool) {
	if i := r.index(id); i >= 0 {
		return r.contacts[i], true
	}
	return Contact{}, false
}

func (r *registry) count() int {
	return len(r.contacts)
}

// firstPair returns the two oldest contacts. Only valid when count() >= 2.
func (r *registry) firstPair() (Contact, Contact) {
	return r.contacts[0], r.contacts[1]
}

func (r *registry) clear() {
	for i := range r.contacts {
		r.contacts[i] = Contact{}
	}
	r.contacts = r.contacts[:0]
}
