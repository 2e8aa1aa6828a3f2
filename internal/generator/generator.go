// Package generator renders the static freeway loop map page
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"

	"github.com/natefinch/atomic"

	"github.com/Zachdehooge/loop-map/internal/app"
)

const pageTemplate = `
    <!DOCTYPE html>
    <html lang="en">
    <head>
       <meta charset="UTF-8"/>
       <meta name="viewport" content="width=device-width, initial-scale=1.0"/>
       <title>{{ .Title }}</title>
       <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
       <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
       <style>
          :root {
             --bg-color: #121212;
             --text-color: #e0e0e0;
             --card-bg: #1e1e1e;
             --card-border: #333;
             --header-bg: #2d2d45;
             --header-border: #444466;
             --accent: #FFD700;
          }
          html, body { margin: 0; height: 100%; background-color: var(--bg-color); color: var(--text-color); font-family: Arial, sans-serif; }
          #viewDiv { position: absolute; inset: 0; }
          .panel {
             position: absolute; z-index: 1000; background-color: var(--card-bg);
             border: 1px solid var(--card-border); border-radius: 5px; padding: 10px 14px;
          }
          #layerPanel { top: 12px; left: 12px; min-width: 180px; }
          #layerPanel h3, #legendPanel h3 { margin: 0 0 8px; font-size: 1em; }
          #layerPanel label { display: block; margin: 4px 0; cursor: pointer; }
          #legendPanel { bottom: 24px; left: 12px; min-width: 200px; }
          .legend-item { display: flex; align-items: center; margin: 5px 0; }
          .legend-swatch { width: 30px; height: 14px; margin-right: 10px; }
          .legend-swatch.line { height: 5px; }
          .legend-swatch.dash { height: 0; border-top: 4px dashed; }
          .legend-swatch.circle { width: 14px; border-radius: 50%; border: 2px solid #000; margin: 0 18px 0 0; }
          .legend-swatch.star { width: 14px; border-radius: 50%; border: 2px solid #000; margin: 0 18px 0 0; }
          .legend-swatch.none { display: none; }
          #navPanel { top: 12px; right: 12px; display: flex; flex-direction: column; gap: 6px; padding: 6px; }
          #navPanel button, .popup-btn {
             background-color: var(--header-bg); color: var(--text-color); border: 1px solid var(--header-border);
             border-radius: 4px; padding: 6px 10px; cursor: pointer; font-size: 14px;
          }
          #navPanel button:hover, .popup-btn:hover { background-color: #3d3d5c; }
          #customPopup { top: 80px; right: 12px; width: 300px; }
          #customPopup.hidden { display: none; }
          .popup-header { display: flex; align-items: center; gap: 10px; padding: 8px; border-radius: 4px; color: #fff; }
          .popup-badge { font-size: 1.6em; font-weight: bold; min-width: 36px; text-align: center; }
          .popup-subtitle { font-size: 0.9em; opacity: 0.9; }
          .info-row { display: flex; justify-content: space-between; margin: 6px 0; border-bottom: 1px solid var(--card-border); padding-bottom: 4px; }
          .info-label { color: #aaa; margin-right: 10px; }
          .popup-actions { display: flex; gap: 8px; margin-top: 10px; }
          .exit-label { color: #000; font-weight: bold; font-size: 14px; text-align: center; line-height: 28px; }
          .incident-label { color: #fff; font-weight: bold; font-size: 22px; text-align: center; line-height: 36px; }
          .updated { font-size: 0.8em; color: #888; margin-top: 8px; }
       </style>
    </head>
    <body>
       <div id="viewDiv"></div>

       <div id="layerPanel" class="panel">
          <h3>Layers</h3>
          {{ range .Payload.Layers }}
          <label><input type="checkbox" class="layer-toggle" data-layer="{{ .Name }}" {{ if .Visible }}checked{{ end }}> {{ .Title }}</label>
          {{ end }}
          <div class="updated">Generated {{ .Payload.LastUpdated }}</div>
       </div>

       <div id="legendPanel" class="panel">
          <h3>Legend</h3>
          <div id="legendRows">
          {{ range .Payload.Legend }}
             <div class="legend-item"><div class="legend-swatch {{ .Symbol }}" style="background-color:{{ .Color }};border-color:{{ .Color }};"></div><span>{{ .Label }}</span></div>
          {{ end }}
          </div>
       </div>

       <div id="navPanel" class="panel">
          <button id="zoomInBtn" title="Zoom in">+</button>
          <button id="zoomOutBtn" title="Zoom out">&minus;</button>
          <button id="homeBtn" title="Back to the incident">&#8962;</button>
       </div>

       <div id="customPopup" class="panel hidden">
          <h3 id="popupTitle"></h3>
          <div id="popupBody"></div>
       </div>

       <script>
          const data = {{ toJSON .Payload }};
          const visibility = {};
          const overlays = {};
          let map;

          function escapeHtml(str) {
              return String(str).replace(/&/g,'&amp;').replace(/</g,'&lt;').replace(/>/g,'&gt;').replace(/"/g,'&quot;');
          }

          function latLng(coords) { return [coords[1], coords[0]]; }

          // ------------------------------------------------------------------
          // Legend: rebuilt from the embedded per-layer rows on every toggle
          // ------------------------------------------------------------------
          function renderLegend() {
              let rows = [];
              data.layers.forEach(l => {
                  if (visibility[l.name]) rows = rows.concat(data.legendRows[l.name] || []);
              });
              if (rows.length === 0) rows = [data.placeholder];

              let html = '';
              rows.forEach(r => {
                  const color = escapeHtml(r.color || 'transparent');
                  html += '<div class="legend-item"><div class="legend-swatch ' + escapeHtml(r.symbol) + '" style="background-color:' + color + ';border-color:' + color + ';"></div>' +
                      '<span>' + escapeHtml(r.label) + '</span></div>';
              });
              document.getElementById('legendRows').innerHTML = html;
          }

          function setVisible(name, visible) {
              if (!(name in overlays)) return;
              visibility[name] = visible;
              if (visible && !map.hasLayer(overlays[name])) overlays[name].addTo(map);
              if (!visible && map.hasLayer(overlays[name])) map.removeLayer(overlays[name]);
              renderLegend();
          }

          // ------------------------------------------------------------------
          // Popups: descriptors come prebuilt, only the markup is made here
          // ------------------------------------------------------------------
          function showPopup(desc) {
              document.getElementById('popupTitle').textContent = desc.title;

              let html = '<div class="popup-header" style="background:' + escapeHtml(desc.accent) + ';">';
              if (desc.badge) html += '<div class="popup-badge">' + escapeHtml(desc.badge) + '</div>';
              html += '<div>';
              if (desc.subtitle) html += '<div>' + escapeHtml(desc.subtitle) + '</div>';
              html += '<div class="popup-subtitle">' + escapeHtml(desc.kind) + '</div></div></div>';

              (desc.rows || []).forEach(r => {
                  html += '<div class="info-row"><span class="info-label">' + escapeHtml(r.label) + '</span><span class="info-value">' + escapeHtml(r.value) + '</span></div>';
              });

              html += '<div class="popup-actions">';
              (desc.actions || []).forEach((a, i) => {
                  html += '<button class="popup-btn" data-action="' + i + '">' + escapeHtml(a.label) + '</button>';
              });
              html += '</div>';

              const body = document.getElementById('popupBody');
              body.innerHTML = html;
              body.querySelectorAll('.popup-btn').forEach(btn => {
                  const action = desc.actions[Number(btn.dataset.action)];
                  btn.addEventListener('click', () => runAction(action));
              });
              document.getElementById('customPopup').classList.remove('hidden');
          }

          function hidePopup() {
              document.getElementById('customPopup').classList.add('hidden');
          }

          function runAction(action) {
              switch (action.type) {
                  case 'zoom':
                      map.flyTo([action.lat, action.lon], action.zoom, { duration: 1 });
                      break;
                  case 'close':
                      hidePopup();
                      break;
              }
          }

          // ------------------------------------------------------------------
          // Overlays
          // ------------------------------------------------------------------
          function buildOverlays() {
              overlays.freeways = L.geoJSON(data.roads, {
                  style: f => ({ color: f.properties.color, weight: f.properties.width, lineCap: 'round', lineJoin: 'round' }),
                  interactive: false
              });

              overlays.links = L.geoJSON(data.links, {
                  style: () => ({ color: '#8A2BE2', weight: 4, dashArray: '6 6' }),
                  onEachFeature: (f, layer) => layer.on('click', e => { L.DomEvent.stopPropagation(e); showPopup(f.properties.popup); })
              });

              overlays.junctions = L.layerGroup(data.junctions.map(j =>
                  L.circleMarker(latLng(j.coords), { radius: 6, color: '#000', weight: 2, fillColor: j.color, fillOpacity: 1 })
                      .on('click', e => { L.DomEvent.stopPropagation(e); showPopup(j.popup); })
              ));

              overlays.exits = L.layerGroup();
              data.exits.forEach(x => {
                  L.circleMarker(latLng(x.coords), { radius: 16, color: '#000', weight: 3, fillColor: x.color, fillOpacity: 1 })
                      .on('click', e => { L.DomEvent.stopPropagation(e); showPopup(x.popup); })
                      .addTo(overlays.exits);
                  L.marker(latLng(x.coords), {
                      icon: L.divIcon({ className: 'exit-label', html: escapeHtml(x.label), iconSize: [28, 28] }),
                      interactive: false
                  }).addTo(overlays.exits);
              });

              const inc = data.incident;
              overlays.incident = L.layerGroup([
                  L.circleMarker(latLng(inc.coords), { radius: 20, color: '#000', weight: 4, fillColor: inc.color, fillOpacity: 1 })
                      .on('click', e => { L.DomEvent.stopPropagation(e); showPopup(inc.popup); }),
                  L.marker(latLng(inc.coords), {
                      icon: L.divIcon({ className: 'incident-label', html: escapeHtml(inc.label), iconSize: [36, 36] }),
                      interactive: false
                  })
              ]);
          }

          function initMap() {
              map = L.map('viewDiv', { zoomControl: false, attributionControl: false })
                  .setView(latLng(data.center), data.zoom);
              const home = { center: latLng(data.center), zoom: data.zoom };

              const streets = L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', { maxZoom: 19 });
              const satellite = L.tileLayer('https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}', { maxZoom: 19 });
              streets.addTo(map);
              L.control.layers({ 'Streets': streets, 'Satellite': satellite }, null, { position: 'bottomright' }).addTo(map);

              buildOverlays();
              data.layers.forEach(l => setVisible(l.name, l.visible));

              document.querySelectorAll('.layer-toggle').forEach(box => {
                  box.addEventListener('change', () => setVisible(box.dataset.layer, box.checked));
              });
              document.getElementById('zoomInBtn').addEventListener('click', () => map.zoomIn());
              document.getElementById('zoomOutBtn').addEventListener('click', () => map.zoomOut());
              document.getElementById('homeBtn').addEventListener('click', () => map.flyTo(home.center, home.zoom, { duration: 1 }));
              map.on('click', hidePopup);

              console.log('[map] loaded ' + data.exits.length + ' exits, ' + data.junctions.length + ' junctions');
          }

          if (document.readyState === 'loading') {
              document.addEventListener('DOMContentLoaded', initMap);
          } else {
              initMap();
          }
       </script>
    </body>
    </html>
    `

// PageTitle is the document title of the generated page
const PageTitle = "Freeway Loop Incident Map"

// GeneratePage renders the session into a standalone HTML page at outputPath
func GeneratePage(s *app.Session, outputPath string) error {
	page, err := RenderPage(s)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(outputPath, bytes.NewReader(page)); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	log.Printf("[generator] page written to %s", outputPath)
	return nil
}

// RenderPage returns the page HTML without writing it
func RenderPage(s *app.Session) ([]byte, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"toJSON": toJSON,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	data := struct {
		Title   string
		Payload PagePayload
	}{
		Title:   PageTitle,
		Payload: BuildPayload(s),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
