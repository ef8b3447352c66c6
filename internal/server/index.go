package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>slicereveal</title>
<style>
  body { margin: 0; min-height: 100vh; display: flex; flex-direction: column;
         align-items: center; justify-content: center; gap: 1rem;
         background: #0a0a0a; color: #e5e5e5; font: 14px system-ui, sans-serif; }
  body.light { background: #ffffff; color: #404040; }
  .controls { display: flex; gap: .5rem; flex-wrap: wrap; justify-content: center; }
  button { font: inherit; padding: .35rem .8rem; border-radius: 4px;
           border: 1px solid currentColor; background: transparent; color: inherit; cursor: pointer; }
  #status { opacity: .6; }
</style>
</head>
<body>
<img id="stream" src="/stream" alt="reveal">
<div class="controls">
  <button data-post="/theme/toggle">theme</button>
  <button data-post="/direction/toggle">direction</button>
  <button data-post="/slices/2">2</button>
  <button data-post="/slices/3">3</button>
  <button data-post="/slices/4">4</button>
  <button data-post="/slices/5">5</button>
  <button data-post="/pause">pause</button>
  <a href="/animation.gif" download><button>gif</button></a>
</div>
<div id="status"></div>
<img id="phases" src="/phases.svg" alt="phases" width="640">
<script>
  const status = document.getElementById("status");
  function show(s) {
    document.body.classList.toggle("light", s.theme === "light");
    const ph = document.getElementById("phases");
    if (ph.dataset.phase !== s.phase) {
      ph.dataset.phase = s.phase;
      ph.src = "/phases.svg?" + s.phase;
    }
    status.textContent = s.slices + " slices · " + s.direction + " · " + s.phase + (s.running ? "" : " · paused");
  }
  document.querySelectorAll("button[data-post]").forEach(b => {
    b.addEventListener("click", async () => {
      const r = await fetch(b.dataset.post, { method: "POST" });
      if (r.ok) show(await r.json());
    });
  });
  fetch("/state").then(r => r.json()).then(show);
  setInterval(() => fetch("/state").then(r => r.json()).then(show), 1000);
</script>
</body>
</html>
`
