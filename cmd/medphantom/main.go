package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"medphantom/pkg/config"
	"medphantom/pkg/geometry"
	"medphantom/pkg/phantom"
	"medphantom/pkg/raster"
	"medphantom/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "phantom.yaml", "Path to YAML configuration file")
	createConfig := flag.Bool("create-config", false, "Write a default configuration file and exit")
	mode := flag.String("mode", "torso", "Phantom to render: torso, shepp, shepp-modified, rods")
	outputDir := flag.String("output", "output", "Directory for rendered volumes and images")
	extractSlices := flag.Bool("extract-slices", false, "Extract and save slices along all planes")
	cine := flag.Bool("cine", false, "Save the mid axial slice of every rendered frame")
	flag.Parse()

	if *createConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to create config file: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Timing.NumCores > 0 {
		runtime.GOMAXPROCS(cfg.Timing.NumCores)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("DYNAMIC ANTHROPOMORPHIC PHANTOM GENERATOR")
	fmt.Println("Voxelized torso with respiratory and cardiac motion")
	fmt.Println("================================")

	switch *mode {
	case "torso":
		runTorso(cfg, *outputDir, *extractSlices, *cine)
	case "shepp":
		runStatic(cfg, *outputDir, *extractSlices, "shepp", sheppVolume(cfg, phantom.SheppLoganOriginal))
	case "shepp-modified":
		runStatic(cfg, *outputDir, *extractSlices, "shepp_modified", sheppVolume(cfg, phantom.SheppLoganModified))
	case "rods":
		runStatic(cfg, *outputDir, *extractSlices, "rods", rodsVolume(cfg))
	default:
		log.Fatalf("Unknown mode: %q (must be torso, shepp, shepp-modified, or rods)", *mode)
	}
}

// runTorso renders the dynamic torso sequence described by the config
func runTorso(cfg *config.Config, outputDir string, extractSlices, cine bool) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	renderer, err := phantom.NewRenderer(opts)
	if err != nil {
		log.Fatalf("Failed to set up renderer: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Printf("Rendering %d frame(s) of %dx%dx%d voxels over %.1f s...\n",
			opts.Frames, opts.NX, opts.NY, opts.NZ, opts.Duration)
	}

	startTime := time.Now()
	seq, err := renderer.Render()
	if err != nil {
		log.Fatalf("Rendering failed: %v", err)
	}
	renderTime := time.Since(startTime)

	fmt.Printf("\nRendering completed in %.2f seconds\n", renderTime.Seconds())
	fmt.Printf("Raw volume layout: %dx%dx%d float32 little-endian, x fastest\n",
		opts.NX, opts.NY, opts.NZ)

	for f, vol := range seq.Frames {
		filename := filepath.Join(outputDir, fmt.Sprintf("%s_%03d.raw", cfg.Output.VolumePrefix, f))
		if err := writeRawVolume(filename, vol); err != nil {
			log.Fatalf("Failed to write frame %d: %v", f, err)
		}
		if cfg.Output.Verbose {
			fmt.Printf("Frame %d (t=%.3f s) saved to: %s\n", f, seq.Times[f], filename)
		}
	}

	if extractSlices {
		saveAllPlanes(seq.Frames[0], filepath.Join(outputDir, cfg.Output.SliceDir))
	}

	if cine {
		cineDir := filepath.Join(outputDir, "cine")
		fmt.Printf("Saving mid axial cine to: %s\n", cineDir)
		if err := visualization.SaveCine(seq, geometry.Axial, opts.NZ/2, cineDir); err != nil {
			log.Printf("Warning: Failed to save cine: %v", err)
		}
	}
}

// runStatic writes a single static volume and optionally its slices
func runStatic(cfg *config.Config, outputDir string, extractSlices bool, name string, vol *raster.Volume) {
	filename := filepath.Join(outputDir, name+".raw")
	if err := writeRawVolume(filename, vol); err != nil {
		log.Fatalf("Failed to write volume: %v", err)
	}
	fmt.Printf("Volume (%dx%dx%d float32 little-endian) saved to: %s\n",
		vol.NX, vol.NY, vol.NZ, filename)

	if extractSlices {
		saveAllPlanes(vol, filepath.Join(outputDir, cfg.Output.SliceDir))
	}
}

func sheppVolume(cfg *config.Config, variant phantom.SheppLoganVariant) *raster.Volume {
	vol, err := phantom.SheppLogan3D(cfg.Grid.NX, variant)
	if err != nil {
		log.Fatalf("Failed to build Shepp-Logan volume: %v", err)
	}
	return vol
}

func rodsVolume(cfg *config.Config) *raster.Volume {
	n := cfg.Grid.NX
	vol := raster.NewVolume(n, n, n)
	ax := raster.Linspace(-1, 1, n)
	for _, e := range phantom.Rods() {
		raster.Draw3D(vol, ax, ax, ax, e)
	}
	return vol
}

// saveAllPlanes exports every cross section of the volume along all three
// anatomical planes
func saveAllPlanes(vol *raster.Volume, slicesDir string) {
	viewer := visualization.NewViewer(vol)
	for _, p := range []geometry.Plane{geometry.Axial, geometry.Coronal, geometry.Sagittal} {
		planeDir := filepath.Join(slicesDir, p.String())
		fmt.Printf("Saving %s slices to: %s\n", p, planeDir)
		if err := viewer.SaveSliceSequence(p, planeDir); err != nil {
			log.Printf("Warning: Failed to save %s slices: %v", p, err)
		}
	}
}

// writeRawVolume dumps the volume as float32 little-endian, x fastest
func writeRawVolume(path string, vol *raster.Volume) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	buf := make([]float32, len(vol.Data))
	for i, v := range vol.Data {
		buf[i] = float32(v)
	}
	return binary.Write(file, binary.LittleEndian, buf)
}
