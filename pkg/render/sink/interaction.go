package sink

const interactionCSS = `
    svg { cursor: grab; user-select: none; }
    svg:active { cursor: grabbing; }
    .label text { pointer-events: none; }`

const interactionJS = `
    (function () {
      const vp = document.getElementById('__PREFIX__viewport');
      const axes = document.getElementById('__PREFIX__axes');
      const svg = vp.ownerSVGElement;
      let t = { x: __X__, y: __Y__, k: __K__ };
      let anim = null;
      let drag = null;
      const clamp = k => Math.max(__MIN__, Math.min(__MAX__, k));
      const ease = s => ((s *= 2) <= 1 ? s * s * s : (s -= 2) * s * s + 2) / 2;
      const apply = () => vp.setAttribute('transform', 'translate(' + t.x + ',' + t.y + ') scale(' + t.k + ')');
      const point = e => {
        const r = svg.getBoundingClientRect();
        const vb = svg.viewBox.baseVal;
        return { x: vb.x + (e.clientX - r.left) * vb.width / r.width, y: vb.y + (e.clientY - r.top) * vb.height / r.height };
      };
      svg.addEventListener('pointerdown', e => { anim = null; drag = point(e); svg.setPointerCapture(e.pointerId); });
      svg.addEventListener('pointermove', e => {
        if (!drag) return;
        const p = point(e);
        t.x += p.x - drag.x; t.y += p.y - drag.y; drag = p;
        apply();
      });
      svg.addEventListener('pointerup', () => { drag = null; });
      svg.addEventListener('wheel', e => {
        e.preventDefault();
        anim = null;
        const p = point(e);
        const k = clamp(t.k * Math.pow(2, -e.deltaY * __RATE__));
        const cx = (p.x - t.x) / t.k, cy = (p.y - t.y) / t.k;
        t = { x: p.x - cx * k, y: p.y - cy * k, k: k };
        apply();
      }, { passive: false });
      svg.addEventListener('dblclick', () => {
        const from = { x: t.x, y: t.y, k: t.k };
        const start = performance.now();
        const step = now => {
          if (anim !== step) return;
          const p = Math.min(1, (now - start) / __DUR__);
          const s = ease(p);
          t = { x: from.x * (1 - s), y: from.y * (1 - s), k: from.k + (1 - from.k) * s };
          apply();
          if (p < 1) requestAnimationFrame(step); else anim = null;
        };
        anim = step;
        requestAnimationFrame(step);
      });
      document.addEventListener('keydown', e => {
        if (e.key === 'a' && axes) axes.style.display = axes.style.display === 'none' ? '' : 'none';
      });
      if (axes && axes.getAttribute('display') === 'none') { axes.removeAttribute('display'); axes.style.display = 'none'; }
    })();`
