package dom

import "strings"

// Classes returns the element's class tokens.
func (n *Node) Classes() []string {
	attr, _ := n.GetAttribute("class")
	if attr == "" {
		return nil
	}
	return strings.Fields(attr)
}

func (n *Node) setClasses(classes []string) {
	n.SetAttribute("class", strings.Join(classes, " "))
}

func (n *Node) HasClass(token string) bool {
	return containsToken(n.Classes(), token)
}

// AddClass adds token unless it is already present. Reports whether the
// class list changed.
func (n *Node) AddClass(token string) bool {
	cls := n.Classes()
	if token == "" || containsToken(cls, token) {
		return false
	}
	n.setClasses(append(cls, token))
	return true
}

// RemoveClass removes every occurrence of token. Reports whether the class
// list changed.
func (n *Node) RemoveClass(token string) bool {
	cls := n.Classes()
	if !containsToken(cls, token) {
		return false
	}
	n.setClasses(removeToken(cls, token))
	return true
}

// ToggleClass flips token and reports whether it is now present.
func (n *Node) ToggleClass(token string) bool {
	if n.RemoveClass(token) {
		return false
	}
	return n.AddClass(token)
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

func removeToken(tokens []string, token string) []string {
	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != token {
			result = append(result, t)
		}
	}
	return result
}
