package console

import "html/template"

// The console renders two pages: the login screen and the dashboard.
// The dashboard form is rendered generically from the active tab's
// field specs so every management screen shares one template.

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>HealthCare Console</title></head>
<body>
<h1>HealthCare</h1>
<p>Welcome back! Please sign in to your account</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/login">
  <label>Login As
    <select name="role">
      <option value="admin">Admin</option>
      <option value="doctor" selected>Doctor</option>
    </select>
  </label>
  <label>Email Address <input type="email" name="email" value="{{.Email}}"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Sign In</button>
</form>
</body>
</html>`))

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>HealthCare Console</title></head>
<body>
<header>
  <span>{{.Email}} ({{.Role}})</span>
  <form method="POST" action="/logout"><button type="submit">Logout</button></form>
</header>
<nav>
  {{range .Tabs}}<a href="/dashboard?tab={{.}}">{{.}}</a> {{end}}
</nav>

<form method="GET" action="/dashboard">
  <input type="hidden" name="tab" value="{{.Tab}}">
  <input type="text" name="q" value="{{.Search}}" placeholder="Search...">
  <button type="submit">Search</button>
</form>

{{if .ListError}}
<div class="error">
  <p>{{.ListError}}</p>
  <a href="/dashboard?tab={{.Tab}}">Retry</a>
</div>
{{end}}

{{if eq .Form.Phase "open"}}
<section class="form">
  <h3>{{if .Form.EntityID}}Edit{{else}}Add{{end}} {{.Tab}}</h3>
  {{if .Form.FormError}}<p class="error">{{.Form.FormError}}</p>{{end}}
  <form method="POST" action="/dashboard/{{.Tab}}/submit">
    {{$form := .Form}}
    {{range .FormFields}}
    <label>{{.Label}}
      {{if .Options}}
      <select name="{{.Name}}">
        {{$selected := index $form.Fields .Name}}
        {{range .Options}}<option value="{{.Value}}"{{if eq .Value $selected}} selected{{end}}>{{.Label}}</option>{{end}}
      </select>
      {{else}}
      <input type="{{.Type}}" name="{{.Name}}" value="{{index $form.Fields .Name}}">
      {{end}}
      {{with index $form.FieldErrors .Name}}<span class="error">{{.}}</span>{{end}}
    </label>
    {{end}}
    <button type="submit">Save</button>
  </form>
  <form method="POST" action="/dashboard/{{.Tab}}/cancel"><button type="submit">Cancel</button></form>
</section>
{{else}}
<form method="POST" action="/dashboard/{{.Tab}}/new"><button type="submit">Add New</button></form>
{{end}}

<table>
  <thead>
    <tr>{{range .Columns}}<th>{{.}}</th>{{end}}<th>Actions</th></tr>
  </thead>
  <tbody>
    {{$tab := .Tab}}
    {{$canDelete := .CanDelete}}
    {{range .Rows}}
    <tr>
      {{range .Cells}}<td>{{.}}</td>{{end}}
      <td>
        <form method="POST" action="/dashboard/{{$tab}}/edit">
          <input type="hidden" name="id" value="{{.ID}}">
          <button type="submit">Edit</button>
        </form>
        {{if $canDelete}}
        <form method="POST" action="/dashboard/{{$tab}}/delete">
          <input type="hidden" name="id" value="{{.ID}}">
          <button type="submit">Delete</button>
        </form>
        {{end}}
      </td>
    </tr>
    {{end}}
  </tbody>
</table>
{{if not .Rows}}<p>No records found</p>{{end}}
</body>
</html>`))
