package adapter

// The report templates. Every page shares the same header/footer chrome;
// the file page relies on white-space:pre for source text, so the source
// line markup must stay on a single template line.

const filePageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Coverage for {{.RelativePath}}: {{pc .Nums}}%</title>
    <link rel="stylesheet" href="style.css" type="text/css">
</head>
<body class="pyfile">
    <header>
        <div class="content">
            <h1><a href="index.html">{{.Title}}</a> &raquo; {{.RelativePath}}:
                <span class="pc_cov">{{pc .Nums}}%</span>
            </h1>
            <p class="text">
                {{comma .Nums.NStatements}} statements
                <span class="run">{{comma .Nums.NExecuted}} run</span>
                <span class="mis">{{comma .Nums.NMissing}} missing</span>
                <span class="exc">{{comma .Nums.NExcluded}} excluded</span>
                {{if .HasArcs}}<span class="par">{{comma .Nums.NPartialBranches}} partial</span>{{end}}
            </p>
        </div>
    </header>
    <main id="source">
        {{range .Lines}}
        <p id="t{{.Number}}" class="{{.CSSClass}}"><span class="n"><a href="#t{{.Number}}">{{.Number}}</a></span><span class="t">{{.Text}}</span>{{if .ContextsLabel}}<span class="ctxs" title="{{range .ContextList}}{{.}}&#10;{{end}}">{{.ContextsLabel}}</span>{{end}}{{if .Annotate}}<span class="annotate short" title="{{.AnnotateLong}}">{{.Annotate}}</span>{{end}}</p>
        {{end}}
    </main>
    <footer>
        <div class="content">
            <p>
                Created by <a href="{{.URL}}">covcode v{{.Version}}</a>
                at {{.TimeStamp}}
            </p>
        </div>
    </footer>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}: {{pc .Totals}}%</title>
    <link rel="stylesheet" href="style.css" type="text/css">
</head>
<body class="indexfile">
    <header>
        <div class="content">
            <h1>{{.Title}}:
                <span class="pc_cov">{{pc .Totals}}%</span>
            </h1>
            <p class="text"><a href="package_tree.html">Package tree</a></p>
        </div>
    </header>
    <main id="index">
        <table class="index">
            <thead>
                <tr>
                    <th class="name">Module</th>
                    <th>statements</th>
                    <th>missing</th>
                    <th>excluded</th>
                    {{if .HasArcs}}
                    <th>branches</th>
                    <th>partial</th>
                    {{end}}
                    <th class="right">coverage</th>
                </tr>
            </thead>
            <tbody>
                {{range .Files}}
                <tr class="file">
                    <td class="name"><a href="{{.Record.HTMLFilename}}">{{.Record.RelativePath}}</a></td>
                    <td>{{comma .Record.Nums.NStatements}}</td>
                    <td>{{comma .Record.Nums.NMissing}}</td>
                    <td>{{comma .Record.Nums.NExcluded}}</td>
                    {{if $.HasArcs}}
                    <td>{{comma .Record.Nums.NBranches}}</td>
                    <td>{{comma .Record.Nums.NPartialBranches}}</td>
                    {{end}}
                    <td class="right" data-ratio="{{ratio .Record.Nums}}">{{pc .Record.Nums}}%</td>
                </tr>
                {{end}}
            </tbody>
            <tfoot>
                <tr class="total">
                    <td class="name">Total</td>
                    <td>{{comma .Totals.NStatements}}</td>
                    <td>{{comma .Totals.NMissing}}</td>
                    <td>{{comma .Totals.NExcluded}}</td>
                    {{if .HasArcs}}
                    <td>{{comma .Totals.NBranches}}</td>
                    <td>{{comma .Totals.NPartialBranches}}</td>
                    {{end}}
                    <td class="right" data-ratio="{{ratio .Totals}}">{{pc .Totals}}%</td>
                </tr>
            </tfoot>
        </table>
    </main>
    <footer>
        <div class="content">
            <p>
                Created by <a href="{{.URL}}">covcode v{{.Version}}</a>
                at {{.TimeStamp}}
            </p>
        </div>
    </footer>
</body>
</html>
`

const treeTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}: {{pc .Totals}}%</title>
    <link rel="stylesheet" href="style.css" type="text/css">
</head>
<body class="treefile">
    <header>
        <div class="content">
            <h1>{{.Title}}:
                <span class="pc_cov">{{pc .Totals}}%</span>
            </h1>
            <p class="text"><a href="index.html">Flat index</a></p>
        </div>
    </header>
    <main id="tree">
        <table class="index" id="tree-table">
            <thead>
                <tr>
                    <th class="name">Package / Module</th>
                    <th>statements</th>
                    <th>missing</th>
                    <th class="right">coverage</th>
                </tr>
            </thead>
            <tbody>
                {{range .Files}}
                <tr class="{{if .IsModule}}file{{else}}package{{end}}" data-node-id="{{.Node.NodeID}}"{{if .Node.ParentID}} data-node-pid="{{.Node.ParentID}}"{{end}}>
                    <td class="name depth-{{.Depth}}">
                        {{if .IsModule}}<a href="{{.Node.HTMLFilename}}">{{.Node.Path}}</a>{{else}}<span class="toggle">{{.Node.Path}}</span>{{end}}
                    </td>
                    <td>{{comma .Node.Nums.NStatements}}</td>
                    <td>{{comma .Node.Nums.NMissing}}</td>
                    <td class="right" data-ratio="{{ratio .Node.Nums}}">{{pc .Node.Nums}}%</td>
                </tr>
                {{end}}
            </tbody>
            <tfoot>
                <tr class="total">
                    <td class="name">Total</td>
                    <td>{{comma .Totals.NStatements}}</td>
                    <td>{{comma .Totals.NMissing}}</td>
                    <td class="right" data-ratio="{{ratio .Totals}}">{{pc .Totals}}%</td>
                </tr>
            </tfoot>
        </table>
    </main>
    <script>
        (function () {
            var rows = document.querySelectorAll('#tree-table tbody tr');
            function childRows(id) {
                return document.querySelectorAll('#tree-table tbody tr[data-node-pid="' + id + '"]');
            }
            function setVisible(id, visible) {
                childRows(id).forEach(function (row) {
                    row.style.display = visible ? '' : 'none';
                    if (!visible || !row.classList.contains('collapsed')) {
                        setVisible(row.dataset.nodeId, visible);
                    }
                });
            }
            rows.forEach(function (row) {
                var toggle = row.querySelector('.toggle');
                if (!toggle) return;
                toggle.addEventListener('click', function () {
                    var collapsed = row.classList.toggle('collapsed');
                    setVisible(row.dataset.nodeId, !collapsed);
                });
            });
        })();
    </script>
    <footer>
        <div class="content">
            <p>
                Created by <a href="{{.URL}}">covcode v{{.Version}}</a>
                at {{.TimeStamp}}
            </p>
        </div>
    </footer>
</body>
</html>
`

const styleCSS = `/* covcode report stylesheet */
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; color: #333; }
header, footer { background: #f8f8f8; border-bottom: 1px solid #ddd; }
footer { border-top: 1px solid #ddd; border-bottom: none; font-size: 85%; color: #666; }
.content { padding: 1em 2em; }
h1 { font-size: 1.25em; margin: 0 0 .25em; }
h1 a { color: inherit; text-decoration: none; }
.pc_cov { font-weight: bold; }
main { padding: 1em 2em; }
table.index { border-collapse: collapse; width: 100%; }
table.index th, table.index td { padding: .4em .6em; border-bottom: 1px solid #eee; text-align: left; }
table.index th.right, table.index td.right { text-align: right; }
table.index tr.total td { font-weight: bold; border-top: 2px solid #ccc; }
table.index td.name a { text-decoration: none; color: #0366d6; }
tr.package span.toggle { cursor: pointer; font-weight: bold; }
td.depth-1 { padding-left: 2em; }
td.depth-2 { padding-left: 3.5em; }
td.depth-3 { padding-left: 5em; }
td.depth-4 { padding-left: 6.5em; }
td.depth-5 { padding-left: 8em; }
#source { font-family: SFMono-Regular, Consolas, Menlo, monospace; font-size: 13px; }
#source p { margin: 0; white-space: pre; line-height: 1.45; }
#source span.n { display: inline-block; width: 3.5em; text-align: right; padding-right: .8em; color: #999; user-select: none; }
#source span.n a { color: inherit; text-decoration: none; }
#source p.run { background: #e7f4e4; }
#source p.mis { background: #fde2e2; }
#source p.exc { background: #f0f0f0; color: #888; }
#source p.par { background: #fdf1d8; }
#source span.annotate { float: right; color: #b35c00; padding-right: 1em; }
#source span.ctxs { float: right; background: #e8f0fe; border-radius: .6em; padding: 0 .6em; margin-right: .5em; font-size: 85%; }
span.run { color: #2e7d32; }
span.mis { color: #c62828; }
span.exc { color: #777; }
span.par { color: #b35c00; }
`
