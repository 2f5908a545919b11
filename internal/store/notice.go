package store

// Notice is the single message currently shown to the user. At most one of
// success or error is active.
type Notice struct {
	Text  string
	Error bool
	// Kind is set for error notices.
	Kind Kind
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Text == ""
}

func successNotice(text string) Notice {
	return Notice{Text: text}
}

func errorNotice(err *Error) Notice {
	return Notice{Text: err.Message, Error: true, Kind: err.Kind}
}
