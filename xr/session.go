package xr

import (
	"errors"
	"fmt"
)

// SessionMode is the requested usage mode of a session.
type SessionMode string

const (
	ModeInline      SessionMode = "inline"
	ModeImmersiveVR SessionMode = "immersive-vr"
	ModeImmersiveAR SessionMode = "immersive-ar"
)

// ErrNoMatchingDevice is returned when a session is requested for an
// unsupported mode or after the device has disconnected.
var ErrNoMatchingDevice = errors.New("no device matching the session request")

// ErrUnsupportedFeature is returned when a required session feature is
// not in the device's supported-feature list.
var ErrUnsupportedFeature = errors.New("unsupported feature")

// SessionInit carries the feature lists a client requests for a session.
type SessionInit struct {
	RequiredFeatures []string
	OptionalFeatures []string
}

// Validate reduces the requested features against the device's supported
// list. Every required feature must be supported or the request fails
// with ErrUnsupportedFeature; optional features are granted only when
// supported. The granted list preserves request order.
func (init SessionInit) Validate(mode SessionMode, supported []string) ([]string, error) {
	set := make(map[string]bool, len(supported))
	for _, f := range supported {
		set[f] = true
	}
	granted := make([]string, 0, len(init.RequiredFeatures)+len(init.OptionalFeatures))
	for _, f := range init.RequiredFeatures {
		if !set[f] {
			return nil, fmt.Errorf("%w: %q required by %s session", ErrUnsupportedFeature, f, mode)
		}
		granted = append(granted, f)
	}
	for _, f := range init.OptionalFeatures {
		if set[f] {
			granted = append(granted, f)
		}
	}
	return granted, nil
}

// Session is the handle returned by a session builder: a running device
// actor plus the session-scoped hit-test id allocator.
type Session struct {
	device    Device
	nextQuery HitTestID
}

// NewSession wraps a constructed device actor in a session handle.
func NewSession(device Device) *Session {
	return &Session{device: device}
}

// Device returns the device actor backing this session.
func (s *Session) Device() Device {
	return s.device
}

// GrantedFeatures returns the feature list granted at negotiation time.
func (s *Session) GrantedFeatures() []string {
	return s.device.GrantedFeatures()
}

// RequestHitTest registers a persistent hit-test query and returns its
// monotonically assigned id.
func (s *Session) RequestHitTest(space SpaceDescriptor, ray Ray[ApiSpace], types EntityTypes) HitTestID {
	s.nextQuery++
	id := s.nextQuery
	s.device.RequestHitTest(HitTestSource{ID: id, Space: space, Ray: ray, Types: types})
	return id
}

// CancelHitTest removes a previously requested hit-test query.
func (s *Session) CancelHitTest(id HitTestID) {
	s.device.CancelHitTest(id)
}

// SessionBuilder is the session-runtime contract: Spawn invokes factory
// on the runtime's own execution context and wraps the resulting device
// actor in a session handle.
type SessionBuilder interface {
	Spawn(factory func() (Device, error)) (*Session, error)
}

// SpawnBuilder is a goroutine-backed SessionBuilder for embedding the
// device stack in-process.
type SpawnBuilder struct{}

func (SpawnBuilder) Spawn(factory func() (Device, error)) (*Session, error) {
	type result struct {
		device Device
		err    error
	}
	done := make(chan result, 1)
	go func() {
		device, err := factory()
		done <- result{device, err}
	}()
	res := <-done
	if res.err != nil {
		return nil, res.err
	}
	return NewSession(res.device), nil
}

// Quitter lets a device ask the session runtime to shut the session down.
type Quitter struct {
	quit func()
}

// NewQuitter wraps a shutdown callback.
func NewQuitter(fn func()) *Quitter {
	return &Quitter{quit: fn}
}

// Quit invokes the shutdown callback, if any.
func (q *Quitter) Quit() {
	if q != nil && q.quit != nil {
		q.quit()
	}
}
