package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// backendProbeOrder lists the HAL backends OpenSession probes; the first
// registered one wins. Only backends linked into the binary (via blank
// import above) can be registered.
var backendProbeOrder = []gputypes.Backend{
	gputypes.BackendVulkan,
}

// SessionConfig configures session construction.
type SessionConfig struct {
	// Provider optionally supplies a shared external GPU device. It must
	// expose HalDevice() any and HalQueue() any returning wgpu/hal types.
	// A session built over a provider borrows the device and never
	// destroys it on Close.
	Provider any
}

// Session owns the GPU acquisition chain: a backend instance and one opened
// GPU-class adapter with its device and in-order queue. Sessions are
// constructed once and closed last, after every resource created from them.
type Session struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName    string
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

// OpenSession acquires the first registered backend, its first GPU-class
// adapter (discrete or integrated), and an opened device with queue.
//
// Failure kinds: ErrNoBackend when no HAL backend is registered,
// ErrNoDevice when the backend exposes no GPU-class adapter, and
// ErrSessionInit when instance creation or adapter open is refused.
func OpenSession(cfg SessionConfig) (*Session, error) {
	if cfg.Provider != nil {
		return sessionFromProvider(cfg.Provider)
	}

	backend, ok := probeBackend()
	if !ok {
		return nil, fmt.Errorf("%w: no registered HAL backend", ErrNoBackend)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrSessionInit, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters enumerated", ErrNoDevice)
	}
	selected := selectAdapter(adapters)
	if selected == nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %d adapter(s), none discrete or integrated", ErrNoDevice, len(adapters))
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open adapter %q: %w", ErrSessionInit, selected.Info.Name, err)
	}

	s := &Session{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}
	slogger().Info("grayscale: session opened", "adapter", s.adapterName)
	return s, nil
}

func probeBackend() (hal.Backend, bool) {
	for _, id := range backendProbeOrder {
		if b, ok := hal.GetBackend(id); ok {
			return b, true
		}
	}
	return nil, false
}

// selectAdapter returns the first GPU-class adapter, or nil when the host
// has none. There is deliberately no ranking beyond first-match and no
// fallback to CPU or virtual adapters.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return nil
}

// sessionFromProvider borrows a device and queue from an external provider.
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func sessionFromProvider(provider any) (*Session, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", ErrSessionInit)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrSessionInit)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrSessionInit)
	}

	s := &Session{
		device:         device,
		queue:          queue,
		adapterName:    "shared device",
		externalDevice: true,
	}
	slogger().Info("grayscale: session opened on shared device")
	return s, nil
}

// AdapterName returns the name of the selected adapter for diagnostics.
func (s *Session) AdapterName() string { return s.adapterName }

// Close releases the device then the instance, reverse of acquisition.
// The queue is dropped with the device. Close is idempotent and safe after
// partial construction. Borrowed devices are not destroyed; the session
// only drops its references.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if !s.externalDevice {
		if s.device != nil {
			s.device.Destroy()
		}
		if s.instance != nil {
			s.instance.Destroy()
		}
	}
	s.device = nil
	s.queue = nil
	s.instance = nil
	s.externalDevice = false
}
