package scalar

import "fmt"

// MapDirectory is a fixed in-memory Directory. Lookups are counted so
// callers can observe caching.
type MapDirectory struct {
	Users  map[string]uint32
	Groups map[string]uint32

	Lookups int
}

func (d *MapDirectory) LookupUser(name string) (uint32, error) {
	d.Lookups++
	if id, ok := d.Users[name]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown user %s", name)
}

func (d *MapDirectory) LookupGroup(name string) (uint32, error) {
	d.Lookups++
	if id, ok := d.Groups[name]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown group %s", name)
}

func (d *MapDirectory) UserName(uid uint32) (string, error) {
	d.Lookups++
	return reverse(d.Users, uid, "user")
}

func (d *MapDirectory) GroupName(gid uint32) (string, error) {
	d.Lookups++
	return reverse(d.Groups, gid, "group")
}

func reverse(names map[string]uint32, id uint32, what string) (string, error) {
	for name, v := range names {
		if v == id {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown %s id %d", what, id)
}
