// Package careersetu embeds the Career Setu guidance engines in a Go program
// without running the HTTP server. It reads the same CSV datasets and trains
// the same models as the API.
//
//	client, _ := careersetu.New(ctx,
//	    careersetu.WithDataDir("./data"),
//	    careersetu.WithModelDir("./models"),
//	)
//	defer client.Close()
//
//	recs, _ := client.Recommender().Recommend(ctx, careersetu.RecommendQuery{
//	    Skills:   "python sql",
//	    Interest: "data",
//	    TopN:     5,
//	})
//	gap, _ := client.SkillGap().Analyze(ctx, []string{"python"}, "Data Analyst")
//	next, _ := client.Progression().Check(ctx, 4, []string{"installation"})
//	trend, _ := client.Market().Predict(ctx, "Python", 2026)
//
// Models are trained lazily on first use and reused from the model directory
// (or the configured Redis/SQLite store) while the source CSV is unchanged.
package careersetu
