package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Word Jam</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Word Jam</span>
        <h1>Rap Freestyle Word Contributor</h1>
        <p>Drop a word into the shared prompt, vote up the best ones.</p>
      </header>
`)
		if data.Flash != "" {
			_, _ = io.WriteString(w, `      <div class="flash">`+templ.EscapeString(data.Flash)+`</div>
`)
		}
		_, _ = io.WriteString(w, `      <section class="panel">
        <h2>Round #`+itoa(data.RoundNumber)+` &mdash; Current Prompt</h2>
        <blockquote class="prompt">`+templ.EscapeString(data.Prompt)+`</blockquote>
        <div class="metrics">
          <div class="metric"><span class="value">`+itoa(data.TotalChars)+`</span><span class="label">Total Characters</span></div>
          <div class="metric"><span class="value">`+itoa(data.CharsRemaining)+`</span><span class="label">Characters Remaining</span></div>
        </div>
        <div class="meter"><div class="meter-fill" style="width: `+percent(data.TotalChars, data.CharLimit)+`%"></div></div>
      </section>
`)
		if data.CharsRemaining > 0 {
			_, _ = io.WriteString(w, `      <section class="panel">
        <h2>Add New Word</h2>
        <form id="wordForm" class="word-form">
          <input name="word" placeholder="Enter a word" autocomplete="off" maxlength="64" required/>
          <button type="submit" class="primary">Add Word</button>
        </form>
        <div id="wordResult" class="result"></div>
      </section>
`)
		}
		_, _ = io.WriteString(w, `      <section class="panel">
        <h2>Current Round Words</h2>
`)
		if len(data.Words) == 0 {
			_, _ = io.WriteString(w, `        <p class="muted">No words yet. Be the first.</p>
`)
		} else {
			_, _ = io.WriteString(w, `        <ul class="words">
`)
			for _, word := range data.Words {
				_, _ = io.WriteString(w, `          <li class="word-row"><span class="word">`+templ.EscapeString(word.Text)+`</span><span class="votes">Votes: `+itoa(word.Votes)+`</span>`)
				if word.Voted {
					_, _ = io.WriteString(w, `<span class="voted">&#10003; Voted</span>`)
				} else {
					_, _ = io.WriteString(w, `<button class="vote-word secondary" data-word-id="`+utoa(word.ID)+`">&#128077; Vote</button>`)
				}
				if word.Mine {
					_, _ = io.WriteString(w, `<span class="mine">(Your word)</span>`)
				}
				_, _ = io.WriteString(w, `</li>
`)
			}
			_, _ = io.WriteString(w, `        </ul>
`)
		}
		_, _ = io.WriteString(w, `      </section>

      <section class="panel">
        <h2>Previous Rounds</h2>
`)
		if len(data.History) == 0 {
			_, _ = io.WriteString(w, `        <p class="muted">No completed rounds yet.</p>
`)
		}
		for _, round := range data.History {
			_, _ = io.WriteString(w, `        <details class="round">
          <summary>Round #`+itoa(round.Number)+` &mdash; `+itoa(round.VoteCount)+` votes</summary>
`)
			if len(round.Words) == 0 {
				_, _ = io.WriteString(w, `          <p class="muted">No words were added in this round.</p>
`)
			} else {
				_, _ = io.WriteString(w, `          <blockquote class="prompt">`+templ.EscapeString(round.FinalPrompt)+`</blockquote>
          <h3>Words Used</h3>
          <ul class="words">
`)
				for _, word := range round.Words {
					_, _ = io.WriteString(w, `            <li class="word-row"><span class="word">`+templ.EscapeString(word.Text)+`</span><span class="votes">`+itoa(word.Votes)+` votes</span></li>
`)
				}
				_, _ = io.WriteString(w, `          </ul>
`)
				for i, song := range round.Songs {
					_, _ = io.WriteString(w, `          <h3>Song `+itoa(i+1)+`</h3>
`)
					if song.Lyric != "" {
						_, _ = io.WriteString(w, `          <pre class="lyrics">`+templ.EscapeString(song.Lyric)+`</pre>
`)
					}
					if song.AudioURL != "" {
						_, _ = io.WriteString(w, `          <audio controls src="`+templ.EscapeString(song.AudioURL)+`"></audio>
`)
					}
				}
				if len(round.Songs) > 0 {
					if round.Voted {
						_, _ = io.WriteString(w, `          <p class="voted">&#10003; You voted for this round</p>
`)
					} else {
						_, _ = io.WriteString(w, `          <button class="vote-round secondary" data-round-id="`+utoa(round.ID)+`">&#128077; Vote for this round</button>
`)
					}
				}
			}
			_, _ = io.WriteString(w, `        </details>
`)
		}
		_, _ = io.WriteString(w, `      </section>
    </main>

    <script>
      const wordForm = document.getElementById("wordForm");
      const wordResult = document.getElementById("wordResult");

      if (wordForm) {
        wordForm.addEventListener("submit", async (event) => {
          event.preventDefault();
          const word = wordForm.elements.word.value.trim();
          if (!word) return;
          wordResult.textContent = "Adding word...";
          const res = await fetch("/api/words", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify({ word })
          });
          const data = await res.json();
          if (!res.ok) {
            wordResult.textContent = data.error || "Failed to add word.";
            return;
          }
          location.reload();
        });
      }

      document.querySelectorAll(".vote-word").forEach((button) => {
        button.addEventListener("click", async () => {
          await fetch("/api/words/" + button.dataset.wordId + "/vote", { method: "POST" });
          location.reload();
        });
      });

      document.querySelectorAll(".vote-round").forEach((button) => {
        button.addEventListener("click", async () => {
          const res = await fetch("/api/rounds/" + button.dataset.roundId + "/vote", { method: "POST" });
          const data = await res.json();
          if (data.voted) location.reload();
        });
      });
    </script>
  </body>
</html>
`)
		return nil
	})
}
