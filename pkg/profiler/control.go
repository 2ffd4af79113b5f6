// Package profiler owns the multi-rate sampling scheduler, the lock-free
// trace writer, and the start/stop/sync control surface that ties the
// typed source readers and the on-disk trace codec together into one
// profiling session.
package profiler

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tracekit/nvtrace/pkg/board"
	"github.com/tracekit/nvtrace/pkg/reader"
	"github.com/tracekit/nvtrace/pkg/ring"
	"github.com/tracekit/nvtrace/pkg/trace"
)

const (
	fastRingCapacity   = 1024
	mediumRingCapacity = 128
	slowRingCapacity   = 16
	syncRingCapacity   = 64

	drainInterval = time.Millisecond
	tierWarmup    = 10 * time.Millisecond
	defaultFastHz = 1000
	defaultMedHz  = 100
	defaultSlowHz = 10
	minTierHz     = 1
	maxTierHz     = 2000
)

// Profiler is one profiling session against a fixed board configuration.
// Construct with Open; every exit path, including panics unwound through
// WithSession, must reach Close.
type Profiler struct {
	cfg        board.Config
	header     trace.Header
	startTime  time.Time
	f          *os.File
	log        zerolog.Logger

	cpu     *reader.CPU
	gpu     *reader.GPU
	emc     *reader.EMC
	ram     *reader.RAM
	power   *reader.Power
	thermal *reader.Thermal

	fastRing   *ring.Ring[trace.FastSample]
	mediumRing *ring.Ring[trace.MediumSample]
	slowRing   *ring.Ring[trace.SlowSample]
	syncRing   *ring.Ring[trace.SyncPoint]

	w *writer

	syncCounter atomic.Uint64
	lastSyncID  atomic.Uint64

	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// Open creates the trace file, writes a placeholder header, and spawns the
// three tier threads plus the writer thread. fastHz, mediumHz, and slowHz
// default to (1000, 100, 10) when zero and must otherwise lie in [1,2000].
func Open(path string, cfg board.Config, fastHz, mediumHz, slowHz uint32, logCfg LogConfig) (*Profiler, error) {
	if fastHz == 0 {
		fastHz = defaultFastHz
	}
	if mediumHz == 0 {
		mediumHz = defaultMedHz
	}
	if slowHz == 0 {
		slowHz = defaultSlowHz
	}
	for _, hz := range []uint32{fastHz, mediumHz, slowHz} {
		if hz < minTierHz || hz > maxTierHz {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidHz, hz)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("profiler: create %s: %w", path, err)
	}

	lg := componentLogger(logCfg, "profiler")

	emcAvailable := false
	var emcReader *reader.EMC
	if cfg.EMCConfigured() {
		emcReader, err = reader.NewEMC(cfg.EMCActmonPath, cfg.EMCClkRatePath, cfg.EMCActmonPath+"_period")
		emcAvailable = err == nil
		if err != nil {
			lg.Warn().Err(err).Msg("emc paths unreadable, disabling emc for this session")
		}
	}

	var gpuReader *reader.GPU
	if cfg.GPUConfigured() {
		gpuReader, err = reader.NewGPU(cfg.GPULoadPath)
		if err != nil {
			lg.Warn().Err(err).Msg("gpu load path unreadable, disabling gpu for this session")
		}
	}

	railPaths := make([]reader.PowerRailPaths, len(cfg.PowerRails))
	for i, r := range cfg.PowerRails {
		railPaths[i] = reader.PowerRailPaths{VoltagePath: r.VoltagePath, CurrentPath: r.CurrentPath}
	}
	zonePaths := make([]string, len(cfg.ThermalZones))
	for i, z := range cfg.ThermalZones {
		zonePaths[i] = z.TempPath
	}

	header := trace.NewHeader(cfg.BoardName, uint8(cfg.NumCPUCores), uint8(len(cfg.PowerRails)), uint8(len(cfg.ThermalZones)),
		emcAvailable, fastHz, mediumHz, slowHz, cfg.RailNames(), cfg.ZoneNames())

	var placeholder [trace.HeaderSize]byte
	if _, err := f.Write(placeholder[:]); err != nil {
		f.Close()
		return nil, fmt.Errorf("profiler: write placeholder header: %w", err)
	}

	p := &Profiler{
		cfg:        cfg,
		header:     header,
		startTime:  time.Now(),
		f:          f,
		log:        lg,
		cpu:        reader.NewCPU(cfg.NumCPUCores),
		gpu:        gpuReader,
		emc:        emcReader,
		ram:        reader.NewRAM(),
		power:      reader.NewPower(railPaths),
		thermal:    reader.NewThermal(zonePaths),
		fastRing:   ring.New[trace.FastSample](fastRingCapacity),
		mediumRing: ring.New[trace.MediumSample](mediumRingCapacity),
		slowRing:   ring.New[trace.SlowSample](slowRingCapacity),
		syncRing:   ring.New[trace.SyncPoint](syncRingCapacity),
		stopCh:     make(chan struct{}),
	}

	p.w = &writer{
		f:          f,
		bw:         bufio.NewWriterSize(f, 64*1024),
		lg:         componentLogger(logCfg, "writer"),
		fastRing:   p.fastRing,
		mediumRing: p.mediumRing,
		slowRing:   p.slowRing,
		syncRing:   p.syncRing,
		onFatal: func() {
			p.running.Store(false)
			p.signalStop()
		},
	}

	p.running.Store(true)
	p.spawnTiers(fastHz, mediumHz, slowHz)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.w.run(p.stopCh, drainInterval)
	}()

	return p, nil
}

func (p *Profiler) spawnTiers(fastHz, mediumHz, slowHz uint32) {
	fast := newTierClock(fastHz, 0, p.startTime)
	medium := newTierClock(mediumHz, tierWarmup, p.startTime)
	slow := newTierClock(slowHz, tierWarmup, p.startTime)

	p.wg.Add(3)
	go func() {
		defer p.wg.Done()
		fast.run(p.stopCh, p.sampleFast)
	}()
	go func() {
		defer p.wg.Done()
		medium.run(p.stopCh, p.sampleMedium)
	}()
	go func() {
		defer p.wg.Done()
		slow.run(p.stopCh, p.sampleSlow)
	}()
}

func (p *Profiler) sampleFast(elapsed time.Duration) {
	var s trace.FastSample
	s.TimeS = elapsed.Seconds()
	s.CPUUtil, s.CPUAggregate, _ = p.cpu.Sample()
	if p.gpu != nil {
		s.GPULoad = p.gpu.Sample()
	}
	s.RAMUsedKB, s.RAMAvailableKB = p.ram.Sample()
	s.EMCUtil = p.emc.Sample(time.Now())
	p.fastRing.Push(s)
}

func (p *Profiler) sampleMedium(elapsed time.Duration) {
	var s trace.MediumSample
	s.TimeS = elapsed.Seconds()
	s.VoltageMV, s.CurrentMA, s.PowerMW = p.power.Sample()
	p.mediumRing.Push(s)
}

func (p *Profiler) sampleSlow(elapsed time.Duration) {
	var s trace.SlowSample
	s.TimeS = elapsed.Seconds()
	s.TempC = p.thermal.Sample()
	p.slowRing.Push(s)
}

// Sync atomically issues the next sync ID, records the fast-sample count
// observed at this instant, and enqueues a sync-point record. It never
// blocks on the fast tier: it is one atomic increment and one ring push.
func (p *Profiler) Sync() (uint64, error) {
	if !p.running.Load() {
		return p.lastSyncID.Load(), ErrNotRunning
	}
	id := p.syncCounter.Add(1)
	p.lastSyncID.Store(id)
	p.syncRing.Push(trace.SyncPoint{SyncID: id, FastSampleIdx: p.w.nFast.Load()})
	return id, nil
}

// SampleCount returns a non-blocking snapshot of the fast-tier writer
// counter: the number of fast records the writer has appended to its
// buffered output so far.
func (p *Profiler) SampleCount() uint64 {
	return p.w.nFast.Load()
}

// IsRunning reports whether the session is still accepting samples.
func (p *Profiler) IsRunning() bool {
	return p.running.Load()
}

// Status returns a snapshot of soft-error and overflow counters.
func (p *Profiler) Status() Status {
	s := Status{
		Running:        p.running.Load(),
		FastSamples:    p.w.nFast.Load(),
		MediumSamples:  p.w.nMedium.Load(),
		SlowSamples:    p.w.nSlow.Load(),
		SyncPoints:     p.w.nSync.Load(),
		FastOverflow:   p.fastRing.Overflow(),
		MediumOverflow: p.mediumRing.Overflow(),
		SlowOverflow:   p.slowRing.Overflow(),
		SyncOverflow:   p.syncRing.Overflow(),
		CPUSoftErrors:  p.cpu.SoftErrors.Load(),
		RAMSoftErrors:  p.ram.SoftErrors.Load(),
		LastSyncID:     p.lastSyncID.Load(),
	}
	if p.gpu != nil {
		s.GPUSoftErrors = p.gpu.SoftErrors.Load()
	}
	if p.emc != nil {
		s.EMCSoftErrors = p.emc.SoftErrors.Load()
	}
	if p.power != nil {
		s.PowerSoftErrors = p.power.SoftErrors.Load()
	}
	if p.thermal != nil {
		s.ThermalSoftErrors = p.thermal.SoftErrors.Load()
	}
	return s
}

// Close signals every sampler and the writer to stop, joins all of them,
// drains whatever the samplers pushed after the writer's own final pass,
// rewrites the header with final counts, and closes the file. It is
// idempotent and safe to call more than once; only the first call's result
// is returned on subsequent calls.
func (p *Profiler) Close() error {
	p.closeOnce.Do(func() {
		p.running.Store(false)
		p.signalStop()
		p.wg.Wait()
		if p.w.fatalErr.Load() == nil {
			p.w.drainOnce()
		}

		st := p.Status()
		if n := st.FastOverflow + st.MediumOverflow + st.SlowOverflow + st.SyncOverflow; n > 0 {
			p.log.Warn().Uint64("dropped", n).Msg("ring overflow during session")
		}
		if n := st.GPUSoftErrors + st.CPUSoftErrors + st.EMCSoftErrors + st.RAMSoftErrors + st.PowerSoftErrors + st.ThermalSoftErrors; n > 0 {
			p.log.Warn().Uint64("count", n).Msg("soft read errors during session")
		}

		p.closeErr = p.finalize()

		if p.gpu != nil {
			_ = p.gpu.Close()
		}
		if p.emc != nil {
			_ = p.emc.Close()
		}
		if p.power != nil {
			_ = p.power.Close()
		}
		if p.thermal != nil {
			_ = p.thermal.Close()
		}
	})
	return p.closeErr
}

// signalStop closes the stop channel exactly once. Called by Close and by
// the writer when a fatal I/O error means no further samples can be stored.
func (p *Profiler) signalStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *Profiler) finalize() error {
	if fatal := p.w.fatalErr.Load(); fatal != nil {
		p.f.Close()
		return fmt.Errorf("%w: %v", ErrWriterFailed, *fatal)
	}
	if err := p.w.finish(); err != nil {
		p.f.Close()
		return fmt.Errorf("%w: %v", ErrWriterFailed, err)
	}

	p.header.NFast = p.w.nFast.Load()
	p.header.NMedium = p.w.nMedium.Load()
	p.header.NSlow = p.w.nSlow.Load()
	p.header.NSync = p.w.nSync.Load()

	buf := p.header.Encode()
	if _, err := p.f.WriteAt(buf[:], 0); err != nil {
		p.f.Close()
		return fmt.Errorf("profiler: rewrite header: %w", err)
	}
	return p.f.Close()
}
