package render

// builtinTemplate is the compiled-in base template used when the embedded
// template cannot be read.
const builtinTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{NEWSLETTER_TITLE}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; padding: 0; background: #f8f9fa; }
        .container { max-width: 600px; margin: 0 auto; background: white; }
        .header { background: #667eea; color: white; padding: 30px; text-align: center; }
        .content { padding: 30px; }
        .introduction { background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
        .section { margin-bottom: 40px; }
        .section-title { font-size: 22px; color: #343a40; margin-bottom: 4px; }
        .section-description { color: #6c757d; margin: 0 0 20px 0; }
        .media-item { display: flex; background: white; border-radius: 12px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); margin-bottom: 20px; overflow: hidden; }
        .media-poster img { width: 100px; height: auto; display: block; }
        .media-poster-placeholder { width: 100px; height: 150px; background: #e9ecef; color: #868e96; display: flex; align-items: center; justify-content: center; text-align: center; font-size: 12px; }
        .media-details { padding: 20px; flex: 1; }
        .media-title { font-size: 18px; font-weight: 600; margin: 0 0 8px 0; }
        .media-meta { color: #6c757d; font-size: 13px; margin-bottom: 10px; }
        .media-meta span { margin-right: 10px; }
        .media-meta .rating { color: #f59f00; font-weight: 600; }
        .media-overview { font-size: 14px; line-height: 1.6; margin: 0 0 12px 0; }
        .genre-tag { display: inline-block; background: #e7f5ff; color: #1971c2; border-radius: 12px; padding: 2px 10px; font-size: 12px; margin-right: 6px; }
        .conclusion { background: #f8f9fa; padding: 25px; border-radius: 8px; text-align: center; }
        .footer { background: #343a40; color: white; padding: 25px; text-align: center; font-size: 13px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{NEWSLETTER_TITLE}}</h1>
            <p>Generated on {{GENERATION_DATE}}</p>
        </div>
        <div class="content">
            <div class="introduction">{{INTRODUCTION}}</div>
            {{SECTIONS}}
            <div class="conclusion"><p>{{CONCLUSION}}</p></div>
        </div>
        <div class="footer">
            <p>Generated by <strong>medialetter</strong></p>
        </div>
    </div>
</body>
</html>
`
