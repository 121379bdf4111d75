// Package mcp exposes the video chat backend over the Model Context
// Protocol so agents can list, ingest and query videos.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vidchat/internal/core/backend"
)

// IngestVideoArgs defines arguments for the ingest_video tool
type IngestVideoArgs struct {
	URL         string `json:"url" jsonschema:"description=Video URL to download and index,required"`
	Description string `json:"description,omitempty" jsonschema:"description=Optional human-readable description for the video"`
}

// AskVideoArgs defines arguments for the ask_video tool
type AskVideoArgs struct {
	VideoID  string `json:"video_id" jsonschema:"description=Video identifier from list_videos or ingest_video,required"`
	Question string `json:"question" jsonschema:"description=Question about the video content,required"`
}

// VideoSummary represents one video in the list_videos result
type VideoSummary struct {
	VideoID     string `json:"video_id"`
	Description string `json:"description"`
}

// IngestSummary represents the result of ingest_video
type IngestSummary struct {
	VideoID     string `json:"video_id"`
	Description string `json:"description,omitempty"`
}

// AnswerResult represents the result of ask_video
type AnswerResult struct {
	VideoID  string `json:"video_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// StartServer starts the MCP server on stdio.
func StartServer(client *backend.Client) error {
	s := server.NewMCPServer(
		"vidchat",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_videos",
		mcp.WithDescription("List the videos the backend has ingested. Each entry has a video_id usable with ask_video."),
	)
	s.AddTool(listTool, makeListVideosHandler(client))

	ingestTool := mcp.NewTool("ingest_video",
		mcp.WithDescription("Download, transcribe and index a video so it can be queried. Slow: the backend processes the video synchronously."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Video URL to download and index")),
		mcp.WithString("description",
			mcp.Description("Optional human-readable description for the video")),
	)
	s.AddTool(ingestTool, makeIngestVideoHandler(client))

	askTool := mcp.NewTool("ask_video",
		mcp.WithDescription("Ask a question about an ingested video. Answers come from the video's transcript."),
		mcp.WithString("video_id",
			mcp.Required(),
			mcp.Description("Video identifier from list_videos or ingest_video")),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question about the video content")),
	)
	s.AddTool(askTool, makeAskVideoHandler(client))

	return server.ServeStdio(s)
}

func makeListVideosHandler(client *backend.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		videos, err := client.ListVideos(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}

		results := make([]VideoSummary, 0, len(videos))
		for _, v := range videos {
			results = append(results, VideoSummary{
				VideoID:     v.URL,
				Description: v.Description,
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"videos": results,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeIngestVideoHandler(client *backend.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args IngestVideoArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.URL == "" {
			return mcp.NewToolResultError("url is required"), nil
		}

		result, err := client.Ingest(ctx, args.URL, args.Description)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(IngestSummary{
			VideoID:     result.VideoURL,
			Description: result.Description,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeAskVideoHandler(client *backend.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AskVideoArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.VideoID == "" || args.Question == "" {
			return mcp.NewToolResultError("video_id and question are required"), nil
		}

		answer, err := client.Query(ctx, args.VideoID, args.Question)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(AnswerResult{
			VideoID:  args.VideoID,
			Question: args.Question,
			Answer:   answer,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}
