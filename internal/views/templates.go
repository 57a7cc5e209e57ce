package views

const warStatusTemplate = `<h2>War state</h2>
<p>{{.Label}}</p>
{{- if .Remaining}}
<p class="remaining">{{.Remaining}} 남음</p>
{{- end}}`

const badgeTemplate = `<img src="{{.BadgeURL}}" alt="Badge">
<p style="font-size: larger;">{{.Name}}</p>`

const membersTemplate = `{{range .}}<div class="sub-container">
{{- range .}}
  <div class="member">
    <div class="name"><p>{{.Name}}</p></div>
    {{- if .HasAttack}}
    <div class="stats"><p>{{.Stars}}★ {{.Percentage}}% {{.Duration}}</p></div>
    {{- end}}
  </div>
{{- end}}
</div>
{{end}}`

const totalsTemplate = `<p>{{.ClanPercentage}}% {{.ClanDuration}} VS {{.OpponentPercentage}}% {{.OpponentDuration}}</p>`

const differenceTemplate = `<p>{{.Percentage}}% {{.Duration}} 차이남</p>`

const pageTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>{{.Fragments.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; padding: 8px; background: #1d1f24; color: #f0f0f0; }
.header { display: flex; justify-content: space-between; align-items: center; }
.header img { width: 96px; }
.members { display: flex; gap: 16px; }
.side { display: flex; gap: 8px; }
.sub-container { display: flex; flex-direction: column; gap: 2px; }
.member p { margin: 0; font-size: 12px; }
.stats p { color: #f5c542; }
</style>
</head>
<body data-tag="{{.Tag}}">
<div class="header">
  <div id="clan">{{.Fragments.Clan}}</div>
  <div id="war-status">{{.Fragments.WarStatus}}</div>
  <div id="opponent">{{.Fragments.Opponent}}</div>
</div>
<div id="time">{{.Fragments.Time}}</div>
<div id="time_difference">{{.Fragments.TimeDifference}}</div>
<div class="members">
  <div id="members-left" class="side">{{.Fragments.MembersLeft}}</div>
  <div id="members-right" class="side">{{.Fragments.MembersRight}}</div>
</div>
<div class="controls">
  <button type="button" data-action="/scoreboard/open">scoreboard</button>
  <button type="button" data-action="/scoreboard/close">close scoreboard</button>
  <button type="button" data-action="/back">back</button>
</div>
<form id="logo" method="post" action="/logo" enctype="multipart/form-data">
  <input type="hidden" name="tag" value="{{.Tag}}">
  <label><input type="checkbox" name="clan_default_logo" checked> clan default logo</label>
  <input type="file" name="clan_custom_logo" accept="image/*">
  <label><input type="checkbox" name="opponent_default_logo" checked> opponent default logo</label>
  <input type="file" name="opponent_custom_logo" accept="image/*">
  <button type="submit">update logo</button>
</form>
<script>
(function () {
  const tag = document.body.dataset.tag;
  const ids = {
    warStatus: "war-status", clan: "clan", opponent: "opponent",
    membersLeft: "members-left", membersRight: "members-right",
    time: "time", timeDifference: "time_difference"
  };
  function post(action) {
    return fetch(action + "?tag=" + encodeURIComponent(tag), {method: "POST"});
  }
  document.querySelectorAll("button[data-action]").forEach(function (btn) {
    btn.addEventListener("click", function () {
      const done = post(btn.dataset.action);
      if (btn.dataset.action === "/back") {
        done.finally(function () { history.back(); });
      }
    });
  });
  // The scoreboard opens with the page; 409 means it is already open.
  post("/scoreboard/open");
  const logo = document.getElementById("logo");
  logo.addEventListener("submit", function (e) {
    e.preventDefault();
    fetch(logo.action, {method: "POST", body: new FormData(logo)});
  });
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/events?tag=" + encodeURIComponent(tag));
  ws.onmessage = function (msg) {
    const ev = JSON.parse(msg.data);
    if (ev.event !== "viewUpdate" || ev.tag !== tag) { return; }
    for (const key in ids) {
      document.getElementById(ids[key]).innerHTML = ev.payload[key] || "";
    }
  };
})();
</script>
</body>
</html>
`
