package scalar

import (
	"fmt"
	"os/user"
	"strconv"
)

// Directory resolves user and group names. The default implementation
// reads the platform database through os/user.
type Directory interface {
	LookupUser(name string) (uint32, error)
	LookupGroup(name string) (uint32, error)
	UserName(uid uint32) (string, error)
	GroupName(gid uint32) (string, error)
}

type osDirectory struct{}

func (osDirectory) LookupUser(name string) (uint32, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return 0, err
	}
	return parseID(u.Uid)
}

func (osDirectory) LookupGroup(name string) (uint32, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, err
	}
	return parseID(g.Gid)
}

func (osDirectory) UserName(uid uint32) (string, error) {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

func (osDirectory) GroupName(gid uint32) (string, error) {
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return "", err
	}
	return g.Name, nil
}

func parseID(text string) (uint32, error) {
	id, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", text, err)
	}
	return uint32(id), nil
}

// parseIdentity accepts a decimal id or a name known to lookup.
func (s *Session) parseIdentity(text string, kind Kind, cache map[string]int64, lookup func(string) (uint32, error)) (int64, error) {
	if id, ok := cache[text]; ok {
		return id, nil
	}
	id, err := parseID(text)
	if err != nil {
		named, lerr := lookup(text)
		if lerr != nil {
			return 0, &ParseError{Input: text, Kind: kind, Err: lerr}
		}
		id = named
	}
	cache[text] = int64(id)
	return int64(id), nil
}

// formatIdentity returns the name for id, or the decimal id when none is
// registered.
func (s *Session) formatIdentity(id uint32, cache map[uint32]string, lookup func(uint32) (string, error)) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name, err := lookup(id)
	if err != nil || name == "" {
		name = strconv.FormatUint(uint64(id), 10)
	}
	cache[id] = name
	return name
}
