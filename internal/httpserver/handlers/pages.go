package handlers

import (
	"net/http"

	"github.com/pudu/heartgate/internal/httpserver/deps"
)

// The pages below are deliberately spare: presentation is not this service's
// business. They exist so the gate has somewhere to redirect and the admin
// has a working console.

func servePage(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

// Home is the gated landing page.
func Home(d deps.Deps) http.HandlerFunc {
	return servePage(homePage)
}

// Puzzle renders the sliding puzzle. The page fetches the image config and a
// shuffled board, runs moves and win detection client-side, and POSTs
// /unlock on a win.
func Puzzle(d deps.Deps) http.HandlerFunc {
	return servePage(puzzlePage)
}

// Admin is the upload console.
func Admin(d deps.Deps) http.HandlerFunc {
	return servePage(adminPage)
}

const homePage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>heartgate</title></head>
<body style="font-family:serif;text-align:center;padding-top:4rem">
<h1>Unlocked &#128275;</h1>
<p>Welcome back.</p>
<p><a href="/admin">admin</a></p>
</body>
</html>
`

const puzzlePage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Unlock</title>
<style>
body{font-family:serif;text-align:center;padding-top:2rem}
#grid{position:relative;margin:1rem auto;width:400px;height:400px;border:2px solid #ccc}
.tile{position:absolute;box-sizing:border-box;border:1px solid #fff;background-size:400px 400px;cursor:pointer}
</style>
</head>
<body>
<h1 id="title">Unlock My Heart &#128274;</h1>
<div id="status"></div>
<div id="grid"></div>
<button id="reset">Shuffle again</button>
<script>
(async function () {
  var grid = document.getElementById('grid');
  var status = document.getElementById('status');
  var n = 0, tiles = [], imageURL = null, solved = false;

  async function loadBoard() {
    var res = await fetch('/puzzle/board', {cache: 'no-store'});
    var board = await res.json();
    n = board.n;
    tiles = board.tiles;
    render();
  }

  function render() {
    grid.innerHTML = '';
    var size = 400 / n;
    tiles.forEach(function (t, i) {
      if (t === n * n - 1 && !solved) return; // empty slot
      var el = document.createElement('div');
      el.className = 'tile';
      el.style.width = size + 'px';
      el.style.height = size + 'px';
      el.style.left = (i % n) * size + 'px';
      el.style.top = Math.floor(i / n) * size + 'px';
      if (imageURL) {
        el.style.backgroundImage = 'url(' + imageURL + ')';
        el.style.backgroundPosition =
          (-(t % n) * size) + 'px ' + (-Math.floor(t / n) * size) + 'px';
      }
      el.onclick = function () { move(i); };
      grid.appendChild(el);
    });
  }

  function move(i) {
    if (solved) return;
    var empty = tiles.indexOf(n * n - 1);
    var dr = Math.abs(Math.floor(i / n) - Math.floor(empty / n));
    var dc = Math.abs((i % n) - (empty % n));
    if (dr + dc !== 1) return;
    var tmp = tiles[i]; tiles[i] = tiles[empty]; tiles[empty] = tmp;
    render();
    checkWin();
  }

  async function checkWin() {
    if (!tiles.every(function (v, i) { return v === i; })) return;
    solved = true;
    render();
    document.getElementById('title').textContent = 'Unlocked! 🔓';
    await fetch('/unlock', {method: 'POST'});
    window.location.assign('/');
  }

  document.getElementById('reset').onclick = function () {
    if (!solved) loadBoard();
  };

  try {
    var res = await fetch('/content/puzzle-config?t=' + Date.now(), {cache: 'no-store'});
    if (!res.ok) throw new Error('no config');
    var cfg = await res.json();
    imageURL = cfg.url + '?v=' + cfg.updatedAt;
    await loadBoard();
  } catch (e) {
    status.textContent = 'No puzzle image uploaded yet. Ask your valentine to add one in the admin console.';
  }
})();
</script>
</body>
</html>
`

const adminPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>heartgate admin</title>
<style>
body{font-family:sans-serif;max-width:720px;margin:2rem auto}
section{margin-bottom:2rem}
li{margin:0.25rem 0}
</style>
</head>
<body>
<h1>Admin</h1>

<section>
<h2>Puzzle image</h2>
<input type="file" id="puzzle-file" accept="image/*">
<button onclick="upload('/content/puzzle', 'puzzle-file')">Upload</button>
</section>

<section>
<h2>Memories</h2>
<input type="file" id="memory-file" accept="image/*">
<button onclick="upload('/content/memories', 'memory-file')">Upload</button>
<ul id="memories"></ul>
</section>

<section>
<h2>Voice notes</h2>
<input type="file" id="voice-file" accept="audio/*">
<button onclick="upload('/content/voices', 'voice-file')">Upload</button>
<ul id="voices"></ul>
</section>

<div id="msg"></div>

<script>
async function refresh() {
  for (const col of ['memories', 'voices']) {
    const res = await fetch('/content/' + col, {cache: 'no-store'});
    const items = await res.json();
    const ul = document.getElementById(col);
    ul.innerHTML = '';
    for (const it of items) {
      const li = document.createElement('li');
      const a = document.createElement('a');
      a.href = it.url; a.textContent = it.id;
      const del = document.createElement('button');
      del.textContent = 'delete';
      del.onclick = async () => {
        const r = await fetch('/content/' + col + '/' + it.id, {method: 'DELETE'});
        report(await r.json());
        refresh();
      };
      li.appendChild(a); li.appendChild(document.createTextNode(' '));
      li.appendChild(del);
      ul.appendChild(li);
    }
  }
}

async function upload(path, inputId) {
  const input = document.getElementById(inputId);
  if (!input.files.length) return;
  const form = new FormData();
  form.append('file', input.files[0]);
  const res = await fetch(path, {method: 'POST', body: form});
  report(await res.json());
  refresh();
}

function report(body) {
  document.getElementById('msg').textContent =
    body.ok ? 'ok' : ('error: ' + (body.error || 'unknown'));
}

refresh();
</script>
</body>
</html>
`
