package config

const defaultConfigYAML = `# Configuration for jiramcp
# Located at ~/.jiramcp/config.yaml

jira:
  # REST base of your Jira site. JIRA_PROJECT_URL overrides this value.
  base_url: "https://your-site.atlassian.net/rest/api/3"
  # Account used for Basic auth. JIRA_USER_EMAIL overrides this value.
  # The API token lives in the OS keychain ('jiramcp config set-key --jira') or JIRA_API_KEY.
  email: ""
  # Default project for create_issue. JIRA_PROJECT_KEY overrides this value.
  project_key: ""
  # Deadline applied to every remote call.
  request_timeout: "30s"

# Model used by 'jiramcp create' to draft issues from a sentence.
llm:
  provider: "openai"
  openai:
    model_name: "gpt-4o"
    # base_url: ""
`

const defaultLinksYAML = `# ~/.jiramcp/links.yaml
# Project aliases. create_issue accepts an alias wherever a project key is expected.
projects:
  - name: "My Project Alias"
    key: "PROJ"
    default_issue_type: "Task"
  - name: "Backend Team"
    key: "BE"
`

const defaultSystemPromptTXT = `You are an assistant that turns short requests into Jira issues.

Output ONLY a JSON object with these members:
- "project_alias": the project alias the request belongs to, taken from the request or context.
- "summary": a concise issue summary.
- "description": a detailed description in plain text.
- "issue_type": one of "Task", "Bug", "Story", "Epic".

Do not wrap the JSON in code fences and do not add any other text.
`

const defaultContextMD = `# Drafting context for jiramcp
# Everything in this file is sent to the model with each 'jiramcp create' request.

## Current Focus

## Components and Services

## Glossary
`
