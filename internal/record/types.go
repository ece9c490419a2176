package record

// File type bits of a POSIX st_mode.
const (
	modeTypeMask = 0o170000
	modeSocket   = 0o140000
	modeLink     = 0o120000
	modeRegular  = 0o100000
	modeBlock    = 0o060000
	modeDir      = 0o040000
	modeChar     = 0o020000
	modeFIFO     = 0o010000
)

// Type is the kind of filesystem object a Record describes.
type Type int

const (
	TypeUnknown Type = iota
	TypeRegular
	TypeDir
	TypeLink
	// TypeBrokenLink is a symbolic link whose target cannot be resolved.
	TypeBrokenLink
	TypeChar
	TypeBlock
	TypePipe
	TypeSocket
)

// TypeWords are the keywords accepted by type filters, in the order their
// initial letters are listed in error messages.
var TypeWords = []string{"regular", "dir", "link", "char", "block", "pipe", "socket"}

// TypeFromMode decodes the file type bits of mode.
func TypeFromMode(mode uint32) Type {
	switch mode & modeTypeMask {
	case modeRegular:
		return TypeRegular
	case modeDir:
		return TypeDir
	case modeLink:
		return TypeLink
	case modeChar:
		return TypeChar
	case modeBlock:
		return TypeBlock
	case modeFIFO:
		return TypePipe
	case modeSocket:
		return TypeSocket
	}
	return TypeUnknown
}

// Letter is the filter letter for t. Broken links answer to 'l'.
func (t Type) Letter() byte {
	switch t {
	case TypeRegular:
		return 'r'
	case TypeDir:
		return 'd'
	case TypeLink, TypeBrokenLink:
		return 'l'
	case TypeChar:
		return 'c'
	case TypeBlock:
		return 'b'
	case TypePipe:
		return 'p'
	case TypeSocket:
		return 's'
	}
	return '?'
}

// ModeChar is the first character of the mode string.
func (t Type) ModeChar() byte {
	switch t {
	case TypeRegular:
		return '-'
	case TypeSocket:
		return 'S'
	case TypeUnknown:
		return '?'
	}
	return t.Letter()
}

func (t Type) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDir:
		return "directory"
	case TypeLink:
		return "symbolic link"
	case TypeBrokenLink:
		return "broken link"
	case TypeChar:
		return "character special"
	case TypeBlock:
		return "block special"
	case TypePipe:
		return "named pipe"
	case TypeSocket:
		return "socket"
	}
	return "unknown"
}
