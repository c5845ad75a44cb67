package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	ifc "github.com/martinha-ssv/NX-422-project"
	"github.com/martinha-ssv/NX-422-project/debug"
	"github.com/martinha-ssv/NX-422-project/field"
	"github.com/martinha-ssv/NX-422-project/render"
	"github.com/martinha-ssv/NX-422-project/server"
	"github.com/martinha-ssv/NX-422-project/store"
	"github.com/martinha-ssv/NX-422-project/stream"
	"github.com/martinha-ssv/NX-422-project/thermal"
	"github.com/martinha-ssv/NX-422-project/waveform"
)

func main() {
	var (
		scene   = flag.String("scene", "", "scene file, three balanced pairs when empty")
		pngOut  = flag.String("png", "", "write <prefix>_field.png and <prefix>_waves.png")
		htmlOut = flag.String("html", "", "write the chart page to this file")
		dbPath  = flag.String("db", "", "record runs in this SQLite database")
		natsURL = flag.String("nats", "", "publish electrode frames to this NATS url")
		batch   = flag.Int("batch", 1000, "samples per NATS frame")
		addr    = flag.String("serve", "", "serve the interactive page on this address")
		workers = flag.Int("workers", 1, "concurrent pair evaluations")
		start   = flag.Float64("start", 0, "waveform start time (s)")
		tissue  = flag.String("tissue", "", "estimate heating in this tissue (Nerve, Skin, Extracel, Connective, Surrounding)")
		ohms    = flag.Float64("resistance", 1e3, "electrode track resistance for the heating estimate (Ω)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	sim, err := loadScene(*scene, *workers)
	if err == nil && *tissue != "" {
		err = heating(sim, *tissue, *ohms)
	}
	if err == nil {
		err = run(sim, *pngOut, *htmlOut, *dbPath, *natsURL, *batch, *addr, *start)
	}
	if err != nil {
		slog.Error("ifc failed", "error", err)
		os.Exit(1)
	}
}

func loadScene(scene string, workers int) (*ifc.Simulation, error) {
	sim := ifc.DefaultScene()
	if scene != "" {
		sim = ifc.NewSimulation()
		if err := sim.Load(scene); err != nil {
			return nil, err
		}
		slog.Info("scene loaded", "path", scene, "pairs", len(sim.Pairs))
	}
	sim.Workers = workers
	return sim, nil
}

// heating logs the thermal budget of every pair's carriers at its pole-1 current
func heating(sim *ifc.Simulation, name string, ohms float64) error {
	tissue, ok := thermal.Tissues[name]
	if name == "Surrounding" {
		tissue, ok = thermal.Surrounding(), true
	}
	if !ok {
		return fmt.Errorf("unknown tissue %q", name)
	}
	pairs, err := sim.EffectivePairs()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		i1, _ := p.Currents(sim.TotalI)
		b, err := thermal.Estimate(thermal.Drive{
			Amplitude:  i1,
			PRF:        sim.Burst.PRF,
			BD:         sim.Burst.BD,
			Fs:         sim.Burst.Fs,
			Pairs:      1,
			Resistance: ohms,
		}, p.F1, p.F2, tissue, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Label, err)
		}
		slog.Info("heating estimate",
			"pair", p.Label,
			"tissue", tissue.Name,
			"f_mod_Hz", b.FMod,
			"delta_T_K", b.DeltaT,
			"SAR_W_per_kg", b.SAR,
			"within_limit", b.WithinSAR,
		)
	}
	return nil
}

func run(sim *ifc.Simulation, pngOut, htmlOut, dbPath, natsURL string, batch int, addr string, start float64) error {
	t0 := time.Now()
	f, err := sim.Field()
	if err != nil {
		return err
	}
	_, mean, _ := f.Stats()
	slog.Info("field computed",
		"grid", humanize.Comma(int64(f.Grid.Len())),
		"inside", humanize.Comma(int64(f.Grid.Inside())),
		"peak_V", f.Peak,
		"mean", mean,
		"coverage", f.Coverage(store.CoverageLevel),
		"elapsed", time.Since(t0),
	)

	var waves *waveform.MultiBurst
	if pngOut != "" || htmlOut != "" || natsURL != "" {
		if waves, err = sim.Waveforms(start); err != nil {
			return err
		}
		slog.Info("waveforms generated",
			"electrodes", waves.Electrodes(),
			"samples", humanize.Comma(int64(len(waves.T))),
		)
	}

	if pngOut != "" {
		if err := writePNG(pngOut, sim, f, waves); err != nil {
			return err
		}
	}
	if htmlOut != "" {
		if err := writeHTML(htmlOut, sim, f, waves); err != nil {
			return err
		}
	}

	var db *store.DB
	if dbPath != "" {
		if db, err = store.Open(dbPath); err != nil {
			return err
		}
		defer db.Close()
		slog.Info("database opened", "path", dbPath)
		if err := saveRun(db, sim, f); err != nil {
			return err
		}
	}

	var pub *stream.Publisher
	if natsURL != "" {
		nc, err := stream.Connect(natsURL)
		if err != nil {
			return err
		}
		defer nc.Drain()
		pub = stream.NewPublisher(nc, batch)
		signals := make([][]float64, waves.Electrodes())
		for e := range signals {
			signals[e] = waves.Electrode(e).Signal
		}
		frames, err := pub.PublishElectrodes(signals, sim.ElectrodeLabels())
		if err != nil {
			return err
		}
		slog.Info("frames published", "url", natsURL, "frames", humanize.Comma(int64(frames)))
	}

	if addr == "" {
		return nil
	}
	srv, err := server.New(sim)
	if err != nil {
		return err
	}
	srv.OnUpdate = func(sim *ifc.Simulation, f *field.AMField, summary server.Summary) {
		if db != nil {
			if err := saveRun(db, sim, f); err != nil {
				slog.Error("save run", "error", err)
			}
		}
		if pub != nil {
			if err := pub.PublishParams(summary); err != nil {
				slog.Error("publish params", "error", err)
			}
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return srv.ListenAndServe(ctx, addr)
}

func writePNG(prefix string, sim *ifc.Simulation, f *field.AMField, waves *waveform.MultiBurst) error {
	pairs, err := sim.EffectivePairs()
	if err != nil {
		return err
	}
	out, err := os.Create(prefix + "_field.png")
	if err != nil {
		return err
	}
	defer out.Close()
	if err := render.FieldPNG(out, f, pairs); err != nil {
		return err
	}
	wout, err := os.Create(prefix + "_waves.png")
	if err != nil {
		return err
	}
	defer wout.Close()
	if err := render.WaveformPNG(wout, waves, sim.ElectrodeLabels()); err != nil {
		return err
	}
	slog.Info("images written", "field", out.Name(), "waves", wout.Name())
	return nil
}

func writeHTML(path string, sim *ifc.Simulation, f *field.AMField, waves *waveform.MultiBurst) error {
	c := &debug.Charts{}
	c.SetPairs(sim.Pairs)
	c.SetField(f)
	c.SetWaveforms(waves, sim.ElectrodeLabels())
	pairs, err := sim.EffectivePairs()
	if err != nil {
		return err
	}
	c.SetEnvelopes(pairs, sim.TotalI)
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := c.Render(out); err != nil {
		return err
	}
	slog.Info("page written", "path", path)
	return nil
}

func saveRun(db *store.DB, sim *ifc.Simulation, f *field.AMField) error {
	var scene strings.Builder
	if err := sim.Write(&scene); err != nil {
		return err
	}
	r := store.NewRun(scene.String(), len(sim.Pairs), f)
	if err := db.SaveRun(&r); err != nil {
		return err
	}
	slog.Info("run saved", "id", r.ID, "created", r.Created().Format(time.RFC3339))
	return nil
}
