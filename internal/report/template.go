package report

// reportTemplate is the self-contained report document: cards per service,
// aggregate stat tiles, client-side search/filter and a persisted theme
// toggle. No server-side state survives the render.
const reportTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
{{- if .AutoRefresh}}
<meta http-equiv="refresh" content="300">
{{- end}}
<title>K8s Deployment Report - {{.Namespace}}</title>
<style>
:root {
  --bg-primary: #f5f7fa;
  --bg-secondary: #ffffff;
  --bg-code: #1e1e2e;
  --text-primary: #2c3e50;
  --text-secondary: #7f8c8d;
  --text-code: #e0e0e0;
  --border: #e1e8ed;
  --shadow: rgba(0, 0, 0, 0.08);
  --accent: #3498db;
  --status-ok: #2ecc71;
  --status-ok-bg: #d4f7da;
  --status-degraded: #f39c12;
  --status-degraded-bg: #ffe7c2;
  --status-missing: #e74c3c;
  --status-missing-bg: #ffd4d4;
}

[data-theme="dark"] {
  --bg-primary: #0d1117;
  --bg-secondary: #161b22;
  --bg-code: #0d1117;
  --text-primary: #c9d1d9;
  --text-secondary: #8b949e;
  --text-code: #c9d1d9;
  --border: #30363d;
  --shadow: rgba(0, 0, 0, 0.3);
}

* { margin: 0; padding: 0; box-sizing: border-box; }

body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  background: var(--bg-primary);
  color: var(--text-primary);
  padding: 20px;
  line-height: 1.6;
  transition: background 0.3s, color 0.3s;
}

.header {
  max-width: 1400px;
  margin: 0 auto 30px;
  display: flex;
  justify-content: space-between;
  align-items: center;
  flex-wrap: wrap;
  gap: 20px;
}

.header h1 {
  font-size: 28px;
  font-weight: 700;
  color: var(--text-primary);
}

.controls {
  display: flex;
  gap: 15px;
  flex-wrap: wrap;
  align-items: center;
}

.search-box {
  position: relative;
}

.search-box input {
  padding: 10px 40px 10px 15px;
  border: 2px solid var(--border);
  border-radius: 8px;
  background: var(--bg-secondary);
  color: var(--text-primary);
  font-size: 14px;
  width: 300px;
  transition: border-color 0.2s;
}

.search-box input:focus {
  outline: none;
  border-color: var(--accent);
}

.search-box::after {
  content: '🔍';
  position: absolute;
  right: 12px;
  top: 50%;
  transform: translateY(-50%);
}

.filter-group {
  display: flex;
  gap: 10px;
}

.filter-btn {
  padding: 8px 16px;
  border: 2px solid var(--border);
  border-radius: 8px;
  background: var(--bg-secondary);
  color: var(--text-primary);
  cursor: pointer;
  font-size: 13px;
  font-weight: 500;
  transition: all 0.2s;
}

.filter-btn:hover {
  border-color: var(--accent);
}

.filter-btn.active {
  background: var(--accent);
  color: white;
  border-color: var(--accent);
}

.theme-toggle {
  padding: 10px 20px;
  border: none;
  border-radius: 8px;
  background: var(--accent);
  color: white;
  cursor: pointer;
  font-size: 14px;
  font-weight: 600;
  transition: opacity 0.2s;
}

.theme-toggle:hover {
  opacity: 0.9;
}

.stats {
  max-width: 1400px;
  margin: 0 auto 20px;
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
  gap: 15px;
}

.stat-card {
  background: var(--bg-secondary);
  padding: 20px;
  border-radius: 12px;
  border: 1px solid var(--border);
  text-align: center;
  transition: transform 0.2s;
}

.stat-card:hover {
  transform: translateY(-2px);
}

.stat-number {
  font-size: 32px;
  font-weight: 700;
  margin-bottom: 8px;
}

.stat-label {
  font-size: 13px;
  color: var(--text-secondary);
  text-transform: uppercase;
  letter-spacing: 0.5px;
}

.grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(400px, 1fr));
  gap: 20px;
  max-width: 1400px;
  margin: 0 auto;
}

.card {
  background: var(--bg-secondary);
  padding: 20px;
  border-radius: 12px;
  box-shadow: 0 2px 8px var(--shadow);
  border: 1px solid var(--border);
  transition: transform 0.2s, box-shadow 0.2s;
  animation: fadeIn 0.3s ease-in;
}

.card:hover {
  transform: translateY(-2px);
  box-shadow: 0 4px 16px var(--shadow);
}

.card.hidden {
  display: none;
}

@keyframes fadeIn {
  from { opacity: 0; transform: translateY(10px); }
  to { opacity: 1; transform: translateY(0); }
}

.svc-title {
  display: flex;
  justify-content: space-between;
  align-items: center;
  margin-bottom: 15px;
  padding-bottom: 12px;
  border-bottom: 2px solid var(--border);
}

.svc-name {
  font-size: 20px;
  font-weight: 700;
  color: var(--text-primary);
}

.svc-info {
  margin-bottom: 15px;
}

.info-item {
  margin-bottom: 10px;
  font-size: 14px;
  display: flex;
  align-items: baseline;
  gap: 8px;
}

.info-item strong {
  color: var(--text-secondary);
  font-weight: 600;
  min-width: 80px;
}

.info-item a {
  color: var(--accent);
  text-decoration: none;
}

.info-item a:hover {
  text-decoration: underline;
}

.tag {
  background: var(--bg-code);
  color: var(--text-code);
  padding: 4px 10px;
  border-radius: 6px;
  font-family: 'Monaco', 'Consolas', monospace;
  font-size: 13px;
}

.deployed-time {
  font-size: 12px;
  color: var(--text-secondary);
}

.status {
  padding: 6px 14px;
  border-radius: 6px;
  font-size: 12px;
  font-weight: 600;
  white-space: nowrap;
}

.status-ok {
  background: var(--status-ok-bg);
  color: var(--status-ok);
}

.status-degraded {
  background: var(--status-degraded-bg);
  color: var(--status-degraded);
}

.status-missing {
  background: var(--status-missing-bg);
  color: var(--status-missing);
}

.section {
  margin-bottom: 12px;
  border: 1px solid var(--border);
  border-radius: 8px;
  overflow: hidden;
}

.section summary {
  padding: 12px 15px;
  background: var(--bg-primary);
  cursor: pointer;
  font-weight: 600;
  font-size: 14px;
  user-select: none;
  transition: background 0.2s;
  list-style: none;
}

.section summary::-webkit-details-marker {
  display: none;
}

.section summary::before {
  content: '▶ ';
  display: inline-block;
  transition: transform 0.2s;
}

.section[open] summary::before {
  transform: rotate(90deg);
}

.section summary:hover {
  background: var(--border);
}

.section[open] summary {
  border-bottom: 1px solid var(--border);
}

.code-block {
  background: var(--bg-code);
  color: var(--text-code);
  padding: 15px;
  border-radius: 0;
  font-size: 12px;
  font-family: 'Monaco', 'Consolas', monospace;
  white-space: pre-wrap;
  overflow-x: auto;
  margin: 0;
  line-height: 1.6;
}

.no-results {
  text-align: center;
  padding: 60px 20px;
  color: var(--text-secondary);
  font-size: 18px;
  display: none;
}

.no-results.show {
  display: block;
}

@media (max-width: 768px) {
  .grid {
    grid-template-columns: 1fr;
  }

  .header {
    flex-direction: column;
    align-items: stretch;
  }

  .controls {
    flex-direction: column;
  }

  .search-box input {
    width: 100%;
  }
}
</style>
</head>
<body>

<div class="header">
  <h1>🚀 K8s Deployment Report - {{.Namespace}}</h1>
  <div class="controls">
    <div class="search-box">
      <input type="text" id="searchInput" placeholder="Search services...">
    </div>
    <div class="filter-group">
      <button class="filter-btn active" data-filter="all">All</button>
      <button class="filter-btn" data-filter="status-ok">✅ Healthy</button>
      <button class="filter-btn" data-filter="status-degraded">⚠️ Degraded</button>
      <button class="filter-btn" data-filter="status-missing">❌ Missing</button>
    </div>
    <button class="theme-toggle" onclick="toggleTheme()">🌓 Toggle Theme</button>
  </div>
</div>

<div class="stats">
  <div class="stat-card">
    <div class="stat-number">{{.Stats.Total}}</div>
    <div class="stat-label">Total Services</div>
  </div>
  <div class="stat-card">
    <div class="stat-number" style="color: var(--status-ok)">{{.Stats.Healthy}}</div>
    <div class="stat-label">Healthy</div>
  </div>
  <div class="stat-card">
    <div class="stat-number" style="color: var(--status-degraded)">{{.Stats.Degraded}}</div>
    <div class="stat-label">Degraded</div>
  </div>
  <div class="stat-card">
    <div class="stat-number" style="color: var(--status-missing)">{{.Stats.Missing}}</div>
    <div class="stat-label">Missing</div>
  </div>
</div>

<div class="grid" id="serviceGrid">
{{- range .Services}}
  <div class="card" data-service="{{.Service}}" data-repo="{{.Repo}}" data-status="{{.StatusClass}}">
    <div class="svc-title">
      <span class="svc-name">{{.Service}}</span>
      <span class="status {{.StatusClass}}">{{.Status}}</span>
    </div>
    <div class="svc-info">
      <div class="info-item">
        <strong>Repo:</strong>
        <a href="{{$.WebURL}}/{{$.Org}}/{{.Repo}}" target="_blank">{{.Repo}}</a>
      </div>
      <div class="info-item">
        <strong>Tag:</strong>
        <code class="tag">{{.Tag}}</code>
      </div>
      <div class="info-item">
        <strong>Deployed:</strong>
        <span class="deployed-time">{{.DeployedAt}}</span>
      </div>
    </div>

    <details class="section">
      <summary>📦 Pods ({{len .PodsInfo}})</summary>
      <pre class="code-block">{{range .PodsInfo}}{{.}}
{{end}}</pre>
    </details>

    <details open class="section">
      <summary>🌿 Common Branches (current)</summary>
      <pre class="code-block">{{.CommonBranches}}</pre>
    </details>

    <details class="section">
      <summary>📚 History (last {{len .History}})</summary>
      <pre class="code-block">{{range .History}}--- {{.Filename}} ---
{{.Content}}

{{end}}{{if not .History}}No history available{{end}}</pre>
    </details>
  </div>
{{- end}}
</div>

<div class="no-results" id="noResults">
  No services found matching your criteria
</div>

<script>
// Theme toggle
function toggleTheme() {
  const html = document.documentElement;
  const currentTheme = html.getAttribute('data-theme');
  const newTheme = currentTheme === 'dark' ? 'light' : 'dark';
  html.setAttribute('data-theme', newTheme);
  localStorage.setItem('theme', newTheme);
}

// Load saved theme
const savedTheme = localStorage.getItem('theme') || 'light';
document.documentElement.setAttribute('data-theme', savedTheme);

// Search functionality
const searchInput = document.getElementById('searchInput');
const cards = document.querySelectorAll('.card');
const noResults = document.getElementById('noResults');

searchInput.addEventListener('input', filterCards);

// Filter functionality
const filterBtns = document.querySelectorAll('.filter-btn');
let activeFilter = 'all';

filterBtns.forEach(btn => {
  btn.addEventListener('click', () => {
    filterBtns.forEach(b => b.classList.remove('active'));
    btn.classList.add('active');
    activeFilter = btn.dataset.filter;
    filterCards();
  });
});

function filterCards() {
  const searchTerm = searchInput.value.toLowerCase();
  let visibleCount = 0;

  cards.forEach(card => {
    const service = card.dataset.service.toLowerCase();
    const repo = card.dataset.repo.toLowerCase();
    const status = card.dataset.status;

    const matchesSearch = service.includes(searchTerm) || repo.includes(searchTerm);
    const matchesFilter = activeFilter === 'all' || status === activeFilter;

    if (matchesSearch && matchesFilter) {
      card.classList.remove('hidden');
      visibleCount++;
    } else {
      card.classList.add('hidden');
    }
  });

  noResults.classList.toggle('show', visibleCount === 0);
}

console.log('Total services: {{.Stats.Total}}');
console.log('Healthy: {{.Stats.Healthy}}, Degraded: {{.Stats.Degraded}}, Missing: {{.Stats.Missing}}');
</script>

</body>
</html>
`
