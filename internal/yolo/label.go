package yolo

import (
	"fmt"
	"strings"
)

// LabelMode selects which instance fields provide the class name.
type LabelMode string

const (
	ModeClass         LabelMode = "class"
	ModeSubclass      LabelMode = "subclass"
	ModeSuperclass    LabelMode = "superclass"
	ModePath          LabelMode = "path"
	ModeClassSubclass LabelMode = "class_subclass"
)

// ParseLabelMode validates a label-field selector from the configuration
// surface.
func ParseLabelMode(s string) (LabelMode, error) {
	switch mode := LabelMode(s); mode {
	case ModeClass, ModeSubclass, ModeSuperclass, ModePath, ModeClassSubclass:
		return mode, nil
	}
	return "", fmt.Errorf("invalid label field %q (valid: class, subclass, superclass, path, class_subclass)", s)
}

// LabelFor extracts the class name for one annotated instance. The second
// return value is false when the instance carries no usable label and must
// be skipped.
func LabelFor(inst map[string]any, mode LabelMode) (string, bool) {
	switch mode {
	case ModeClass:
		return stringField(inst, "class")
	case ModeSubclass:
		return stringField(inst, "subclass")
	case ModeSuperclass:
		return stringField(inst, "superclass")
	case ModePath:
		p, ok := stringField(inst, "path")
		if !ok {
			return "", false
		}
		return p[strings.LastIndex(p, "/")+1:], true
	case ModeClassSubclass:
		c, _ := stringField(inst, "class")
		s, _ := stringField(inst, "subclass")
		switch {
		case c != "" && s != "":
			return c + "/" + s, true
		case c != "":
			return c, true
		case s != "":
			return s, true
		}
		return "", false
	}
	return "", false
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
