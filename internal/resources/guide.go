package resources

const authGuide = `# Google Workspace API Authentication Guide

## Overview

The server calls Google Workspace APIs on behalf of one Google account using
OAuth 2.0. Setting it up takes these steps:

1. Create a Google Cloud project
2. Enable the APIs you need
3. Configure the OAuth consent screen
4. Create OAuth client credentials
5. Obtain a refresh token
6. Configure the server with your credentials

## Step 1: Create a Google Cloud Project

1. Go to the [Google Cloud Console](https://console.cloud.google.com/)
2. Click "Create Project"
3. Enter a project name and click "Create"

## Step 2: Enable APIs

1. In the Cloud Console, go to "APIs & Services" > "Library"
2. Search for each API you need: Gmail, Drive, Calendar, Docs, Sheets, Slides
3. Select each API and click "Enable"

## Step 3: Configure the OAuth Consent Screen

1. Go to "APIs & Services" > "OAuth consent screen"
2. Select "External" unless you have a Google Workspace organization
3. Fill in the app name, user support email and developer contact
4. Add the scopes for the services you enabled
5. Add your Google account as a test user

## Step 4: Create an OAuth Client ID

1. Go to "APIs & Services" > "Credentials"
2. Click "Create Credentials" > "OAuth client ID"
3. Select "Web application"
4. Add the redirect URI of the server, e.g. http://localhost:8080/oauth2callback
5. Click "Create" and note the Client ID and Client Secret

## Step 5: Get a Refresh Token

Either use the MCP tools:

1. Call ` + "`generate_auth_url`" + ` with the services you need
2. Open the URL in a browser and authorize the application
3. Copy the ` + "`code`" + ` parameter from the redirect URL
4. Call ` + "`exchange_code_for_tokens`" + ` with the code

or the command line:

1. Run ` + "`workspace-mcp auth url --services gmail,drive`" + `
2. Authorize in the browser
3. Run ` + "`workspace-mcp auth exchange <code>`" + `

When the server runs with the streamable-http transport, the redirect URI
can point at its ` + "`/oauth2callback`" + ` endpoint, which performs the exchange
and shows the refresh token. The endpoint only accepts URLs generated by that
server through ` + "`generate_auth_url`" + `; a URL from ` + "`auth url`" + ` must be finished
with ` + "`auth exchange`" + `.

## Step 6: Configure the Server

Set the following variables in the environment or in a ` + "`.env`" + ` file:

- CLIENT_ID
- CLIENT_SECRET
- REDIRECT_URI
- REFRESH_TOKEN

Then restart the server.

## Using the Server

Once configured, every tool and resource of the server can reach the Google
Workspace APIs you authorized.`
