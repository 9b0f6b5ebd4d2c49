/*
 * main.go, part of gowannier.
 *
 * Copyright 2024 The gowannier authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//wannierview shows the results of a Wannier90 workflow retrieved to a folder.
//
//By default it prints a text report. With -serve it starts an HTTP server where the
//Wannier functions can be selected to highlight their nearest atoms and show
//their isosurfaces.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	wannier "github.com/rmera/gowannier"
	"github.com/rmera/gowannier/bands"
	"github.com/rmera/gowannier/config"
	"github.com/rmera/gowannier/results"
	"github.com/rmera/gowannier/settings"
	"github.com/rmera/gowannier/view"
)

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file")
	dir := flag.String("dir", "", "results folder, overrides the configuration")
	htmlOut := flag.String("html", "", "write the HTML report to this file")
	pngOut := flag.String("png", "", "write the band structure plot to this PNG file")
	meshOut := flag.String("meshes", "", "write the isosurfaces to this file (zstd-compressed JSON)")
	sel := flag.String("select", "", "id of the Wannier function to select")
	serve := flag.String("serve", "", "serve the report on this address, e.g. localhost:8080")
	quiet := flag.Bool("quiet", false, "don't log warnings")
	flag.Parse()
	if *quiet {
		wannier.SetLogger(nil)
	}

	cfg := config.Default()
	var err error
	if *cfgPath != "" {
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	if *dir != "" {
		cfg.Folder = *dir
	}
	for _, p := range []struct {
		flag string
		dst  *string
	}{{*htmlOut, &cfg.Report.HTML}, {*pngOut, &cfg.Report.PNG}, {*meshOut, &cfg.Report.Meshes}} {
		if p.flag != "" {
			*p.dst = p.flag
		}
	}
	if cfg.Folder == "" {
		cfg.Folder = "."
	}
	if err = cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	data, err := view.Query(results.Dir(cfg.Folder), cfg)
	if err != nil {
		log.Fatal(err)
	}
	panel := view.New(data, cfg)
	defer panel.Close()
	if *sel != "" && !panel.Select(*sel) {
		log.Printf("nothing to show for %s", *sel)
	}
	if err = writeOutputs(panel, cfg); err != nil {
		log.Fatal(err)
	}
	if *serve != "" {
		log.Printf("serving panel %s on http://%s", panel.ID(), *serve)
		log.Fatal(http.ListenAndServe(*serve, handler(panel)))
	}
	if err = panel.RenderText(os.Stdout); err != nil {
		log.Fatal(err)
	}
	printSettings(data, cfg)
}

func printSettings(d *view.Data, cfg *config.Config) {
	m := settings.NewModel()
	m.Structure = d.Structure
	if err := m.SetModelState(map[string]any{"protocol": cfg.Protocol}); err != nil {
		log.Print(err)
		return
	}
	mesh, err := m.Mesh()
	if err != nil {
		return
	}
	fmt.Printf("\nProtocol %s: k-points distance %.3f 1/Å, mesh %dx%dx%d\n", m.Protocol, m.Distance(), mesh[0], mesh[1], mesh[2])
}

func writeFile(name string, write func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return os.WriteFile(name, buf.Bytes(), 0o644)
}

func writeOutputs(P *view.Panel, cfg *config.Config) error {
	d := P.Data()
	if cfg.Report.HTML != "" {
		if err := writeFile(cfg.Report.HTML, func(b *bytes.Buffer) error { return P.Render(b) }); err != nil {
			return err
		}
	}
	if cfg.Report.Meshes != "" && d.Collection != nil {
		if err := writeFile(cfg.Report.Meshes, func(b *bytes.Buffer) error { return results.WriteCompressed(b, d.Collection) }); err != nil {
			return err
		}
	}
	if cfg.Report.PNG != "" {
		if d.Reference == nil || d.Wannier == nil {
			log.Printf("no band structures to plot")
			return nil
		}
		return bands.PlotPNG(cfg.Report.PNG, d.Reference, d.Wannier, d.Outputs.FermiEnergy)
	}
	return nil
}

func handler(P *view.Panel) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if id := r.URL.Query().Get("select"); id != "" {
			P.Select(id)
		}
		var buf bytes.Buffer
		if err := P.Render(&buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := P.RenderText(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("/meshes.json", func(w http.ResponseWriter, r *http.Request) {
		d := P.Data()
		if d == nil || d.Collection == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := results.WriteJSON(w, d.Collection); err != nil {
			log.Printf("writing meshes: %v", err)
		}
	})
	return mux
}
