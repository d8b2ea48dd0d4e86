// Package config loads the deplink configuration: the instance registry,
// the link policy names, rsync tuning and SSH settings.
//
// Sources are layered with koanf, lowest precedence first: embedded
// defaults, the user config under the XDG config home, a project file in
// the working directory, an explicit --config file, a .env file and
// finally DEPLINK_* environment variables (nesting separated by "__").
package config
