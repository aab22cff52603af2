package fsstore

import "github.com/spf13/afero"

// Options configures a Store.
type Options struct {
	Fs   afero.Fs
	Name string
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{}
}

// WithFs mounts the store on the given filesystem instead of the
// operating system filesystem. Resources on a non-OS filesystem are not
// directly file-addressable; they read through connections.
func WithFs(fs afero.Fs) Option {
	return func(o *Options) { o.Fs = fs }
}

// WithName sets the store identifier returned by String. An identifier
// ending in ":" makes resources render URI style ("name:path"); any
// other identifier renders archive style ("name!path").
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}
