package tdms

import "strings"

// ParsePath splits an object path into its group and channel name
// components. A file-root path ("/") yields two empty strings, a group
// path ("/'group'") yields a group name and an empty channel name.
//
// Each path component is wrapped in single quotes; a literal single quote
// inside a component is escaped by doubling it. Slashes inside a quoted
// component do not delimit path segments.
func ParsePath(path string) (groupName, channelName string, err error) {
	if path == "" || path[0] != '/' {
		return "", "", ErrInvalidPath
	}

	components := make([]string, 0, 2)

	i := 0
	for i < len(path) {
		if path[i] != '/' {
			return "", "", ErrInvalidPath
		}

		if i+1 >= len(path) {
			// Root path with no further components.
			break
		}

		if path[i+1] != '\'' {
			return "", "", ErrInvalidPath
		}

		i += 2 // skip "/'"

		var component strings.Builder
		closed := false
		for i < len(path) {
			c := path[i]
			if c == '\'' {
				if i+1 < len(path) && path[i+1] == '\'' {
					component.WriteByte('\'')
					i += 2
					continue
				}
				closed = true
				i++
				break
			}
			component.WriteByte(c)
			i++
		}
		if !closed {
			return "", "", ErrInvalidPath
		}

		components = append(components, component.String())

		if len(components) > 2 {
			return "", "", ErrInvalidPath
		}
	}

	if len(components) > 0 {
		groupName = components[0]
	}
	if len(components) > 1 {
		channelName = components[1]
	}

	return groupName, channelName, nil
}

// FormatPath builds an on-disk object path from a group and channel name.
// An empty group name produces the root path "/"; an empty channel name
// with a non-empty group name produces a group path.
func FormatPath(groupName, channelName string) string {
	if groupName == "" {
		return "/"
	}

	var b strings.Builder
	b.WriteString("/'")
	b.WriteString(escapeComponent(groupName))
	b.WriteByte('\'')

	if channelName != "" {
		b.WriteString("/'")
		b.WriteString(escapeComponent(channelName))
		b.WriteByte('\'')
	}

	return b.String()
}

func escapeComponent(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	return strings.ReplaceAll(s, "'", "''")
}

// IsRootPath reports whether path names the file root ("/").
func IsRootPath(path string) bool {
	groupName, channelName, err := ParsePath(path)
	return err == nil && groupName == "" && channelName == ""
}

// IsGroupPath reports whether path names a group (not the root, not a channel).
func IsGroupPath(path string) bool {
	groupName, channelName, err := ParsePath(path)
	return err == nil && groupName != "" && channelName == ""
}

// IsChannelPath reports whether path names a channel.
func IsChannelPath(path string) bool {
	_, channelName, err := ParsePath(path)
	return err == nil && channelName != ""
}
